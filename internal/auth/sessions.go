package auth

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/readlog/readlog/internal/config"
	"github.com/readlog/readlog/internal/entities"
)

// SessionCookieName is the session cookie issued to signed-in users.
const SessionCookieName = "READLOG_SESSION"

const sessionKeyUserID = "userId"

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by the
// application database. The sqlDB parameter is the underlying *sql.DB
// from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	// 7-day TTL, enforced by the cookie's own expiry rather than any
	// extra server-side bookkeeping.
	sm.Lifetime = cfg.SessionLifetime

	sm.Cookie.Name = SessionCookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// SignIn issues a session for the user after credential verification.
func (sm *SessionManager) SignIn(r *http.Request, user *entities.User) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}
	sm.Put(r.Context(), sessionKeyUserID, int(user.ID))
	return nil
}

// SignOut removes all session data and invalidates the session.
func (sm *SessionManager) SignOut(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// UserID resolves the session to a user id. It returns 0 (anonymous)
// for a missing, malformed, or expired session and never fails.
func (sm *SessionManager) UserID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), sessionKeyUserID))
}

// IsAuthenticated reports whether the request carries a valid session.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.UserID(r) != 0
}
