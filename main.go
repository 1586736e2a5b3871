package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"simple-board/internal/config"
	"simple-board/internal/database"
	"simple-board/internal/router"
	"simple-board/internal/session"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(cfg.Upload.Dir); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}
	if cfg.Session.Backend == "file" {
		if err := ensureDir(filepath.Dir(cfg.Session.File)); err != nil {
			log.Fatalf("create session dir: %v", err)
		}
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// session store
	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var sessions session.Store
	switch cfg.Session.Backend {
	case "", "db":
		sessions = session.NewDBStore(db, ttl)
	case "file":
		sessions = session.NewFileStore(cfg.Session.File, ttl)
	case "memory":
		sessions = session.NewMemory(ttl)
	default:
		log.Fatalf("unknown session backend %q", cfg.Session.Backend)
	}

	// setup router
	r := router.Setup(cfg, db, sessions)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
