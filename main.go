package main

import (
	"context"
	"fmt"

	"github.com/deannos/solutions-company-website/internal/auth"
	"github.com/deannos/solutions-company-website/internal/config"
	"github.com/deannos/solutions-company-website/internal/database"
	"github.com/deannos/solutions-company-website/internal/router"
	"github.com/deannos/solutions-company-website/internal/session"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	setupLogging(cfg.Log)

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		logrus.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("migrate database: %v", err)
	}

	// pick the session backend
	sessions, err := newSessionRepository(cfg, db)
	if err != nil {
		logrus.Fatalf("init session store: %v", err)
	}

	// one-shot cleanup of sessions that expired while the server was down;
	// everything else is invalidated lazily on access
	if removed, err := sessions.DeleteExpired(context.Background()); err != nil {
		logrus.WithError(err).Warn("failed to clean up expired sessions")
	} else if removed > 0 {
		logrus.WithField("removed", removed).Info("cleaned up expired sessions")
	}

	// seed the first administrator
	if err := auth.EnsureAdmin(db, cfg.Admin); err != nil {
		logrus.Fatalf("seed admin: %v", err)
	}

	// setup router
	r := router.SetupRouter(cfg, db, sessions)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logrus.Infof("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("run server: %v", err)
	}
}

func setupLogging(cfg config.LogConfig) {
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func newSessionRepository(cfg *config.Config, db *gorm.DB) (session.Repository, error) {
	switch cfg.Session.Backend {
	case "", "database":
		return session.NewGormRepository(db), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return session.NewRedisRepository(client), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
