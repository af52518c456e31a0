// Command seed populates a development database with a demo account and
// a few reading records so the UI has something to show.
package main

import (
	"flag"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/readlog/readlog/internal/auth"
	"github.com/readlog/readlog/internal/config"
	"github.com/readlog/readlog/internal/database"
	"github.com/readlog/readlog/internal/database/userbooks"
	"github.com/readlog/readlog/internal/database/users"
	"github.com/readlog/readlog/internal/entities"
)

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the database file")
	email := flag.String("email", "demo@readlog.dev", "demo account email")
	password := flag.String("password", "readlog-demo", "demo account password")
	flag.Parse()

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatal("failed to open database", "err", err)
	}
	defer db.Close()

	userRepo := users.NewRepository(db.DB)
	bookRepo := userbooks.NewRepository(db.DB)

	exists, err := userRepo.EmailExists(*email)
	if err != nil {
		log.Fatal("failed to check for demo user", "err", err)
	}
	if exists {
		log.Info("demo user already present, nothing to do", "email", *email)
		return
	}

	hash, err := auth.HashPassword(*password, 10)
	if err != nil {
		log.Fatal("failed to hash password", "err", err)
	}

	user := &entities.User{
		Fullname:     "Demo Reader",
		Email:        *email,
		PasswordHash: hash,
	}
	if err := userRepo.Create(user); err != nil {
		log.Fatal("failed to create demo user", "err", err)
	}

	now := time.Now()
	demoBooks := []entities.UserBook{
		{
			UserID:     user.ID,
			BookID:     "z-h8EAAAQBAJ",
			ReadStatus: entities.ReadStatusReading,
			Name:       "Tomorrow, and Tomorrow, and Tomorrow",
			ReadingHistory: datatypes.JSONSlice[entities.ReadingSession]{
				{ID: uuid.NewString(), PageStart: 30, PageEnd: 72, StartTime: now.Add(-40 * time.Minute), EndTime: now},
				{ID: uuid.NewString(), PageStart: 0, PageEnd: 30, StartTime: now.Add(-26 * time.Hour), EndTime: now.Add(-25 * time.Hour)},
			},
		},
		{
			UserID:         user.ID,
			BookID:         "PGR2AwAAQBAJ",
			ReadStatus:     entities.ReadStatusWantToRead,
			Name:           "The Martian",
			ReadingHistory: datatypes.JSONSlice[entities.ReadingSession]{},
		},
	}
	for i := range demoBooks {
		if err := bookRepo.Create(&demoBooks[i]); err != nil {
			log.Fatal("failed to create demo book", "book", demoBooks[i].Name, "err", err)
		}
	}

	log.Info("seeded demo data", "email", *email, "books", len(demoBooks))
}
