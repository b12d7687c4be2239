package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/dictionary"
	"jobboard/internal/extraction"
	"jobboard/internal/infrastructure/cache"
)

// Container holds the long-lived infrastructure shared by the HTTP surface.
type Container struct {
	Config     config.Config
	DB         database.DB
	Dictionary *dictionary.Dictionary
	Engine     *extraction.Engine
	Cache      *cache.Redis
	Logger     *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if dir := cfg.Database.MigrationsDir; dir != "" {
		runner := migration.Runner{Dir: dir, Logger: logger}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	dict, err := dictionary.Load(cfg.Dictionary.Path)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load skill dictionary: %w", err)
	}

	return &Container{
		Config:     cfg,
		DB:         db,
		Dictionary: dict,
		Engine:     extraction.NewEngine(dict, nil),
		Cache:      cache.NewRedis(logger),
		Logger:     logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
