package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/avvvet/leaderboard-services/configs"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/broker"
	svcconfig "github.com/avvvet/leaderboard-services/internal/leaderboardsvc/config"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/db"
	handlers "github.com/avvvet/leaderboard-services/internal/leaderboardsvc/handlers"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/service"
	nats "github.com/avvvet/leaderboard-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "leaderboard"

func main() {
	config.LoadEnv(SERVICE_NAME)
	cfg := svcconfig.Load()

	config.Logging(SERVICE_NAME+"_service", cfg.LogDir, cfg.LogLevel)
	instanceId := config.CreateUniqueInstance(SERVICE_NAME)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to migrate DB: %v", err)
		}
	}

	// pg connection
	dbpool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbpool.Close()
	log.Printf("pg connection established successfully")

	// event broker; the service runs without one when NATS is not configured
	var events service.EventPublisher
	if cfg.NatsURL != "" {
		n, err := nats.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+"_service_"+instanceId)
		if err != nil {
			log.Warnf("unable to connect to NATS server, events disabled: %v", err)
		} else {
			defer n.Conn.Close()
			log.Printf("NATS connection established successfully %s", n.Url)
			events = broker.NewBroker(n.Conn, cfg.EventSubject, instanceId)
		}
	}

	contestantService := service.NewContestantService(dbpool)
	gameService := service.NewGameService(dbpool, events)
	gameSessionService := service.NewGameSessionService(dbpool, events)
	leaderboardService := service.NewLeaderboardService(dbpool)

	// Init handlers and routes
	h := handlers.NewHandler(cfg, dbpool, contestantService, gameService, gameSessionService, leaderboardService)
	r := handlers.NewRouter(h)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
		return
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
