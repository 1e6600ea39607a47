package main

import (
	"flag"

	config "github.com/avvvet/leaderboard-services/configs"
	svcconfig "github.com/avvvet/leaderboard-services/internal/leaderboardsvc/config"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/db"
	log "github.com/sirupsen/logrus"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	flag.Parse()

	config.LoadEnv("migrate")
	cfg := svcconfig.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if *down {
		if err := db.Rollback(cfg.DatabaseURL); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal(err)
	}
}
