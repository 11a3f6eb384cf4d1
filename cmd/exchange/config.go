package main

import (
	"github.com/sherifabdlnaby/configuro"
)

// Config values can be set using either environment variables with `CONFIG_`
// prefix or config.yml file placed in working directory.
// See https://github.com/sherifabdlnaby/configuro.
type Config struct {
	Logging  Logging
	Server   Server
	Database Database
	PubSub   PubSub
}

type Logging struct {
	Level  string
	Format string
}

type Server struct {
	Address string
}

// Database is optional; when no address is set, the application keeps all
// state in process memory.
type Database struct {
	Address      string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MigrationDir string
}

// PubSub is optional; when no project is set, fulfilled-order notifications
// are discarded.
type PubSub struct {
	Project string
	Topic   string
}

func readConfig() (*Config, error) {
	loader, err := configuro.NewConfig()
	if err != nil {
		return nil, err
	}

	// Default config values.
	config := &Config{
		Logging: Logging{
			Level: "info",
		},
		Server: Server{
			Address: ":8080",
		},
		Database: Database{
			User:     "postgres",
			Password: "postgres",
			Name:     "postgres",
			SSLMode:  "disable",
		},
		PubSub: PubSub{
			Topic: "notifications",
		},
	}

	err = loader.Load(config)
	if err != nil {
		return nil, err
	}

	err = loader.Validate(config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
