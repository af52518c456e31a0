package main

import (
	"github.com/charmbracelet/log"

	"github.com/readlog/readlog/internal/config"
	"github.com/readlog/readlog/internal/entrypoint"
)

// Version information - set at build time via ldflags
var Version = "dev"

func main() {
	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	entrypoint.Run(cfg, Version)
}
