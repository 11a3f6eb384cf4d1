package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	exchange "github.com/Noozen/Currency-Exchange"
	"github.com/Noozen/Currency-Exchange/inmem"
	"github.com/Noozen/Currency-Exchange/logrus"
	"github.com/Noozen/Currency-Exchange/postgres"
	"github.com/Noozen/Currency-Exchange/pubsub"
	"github.com/Noozen/Currency-Exchange/rest"
	"github.com/Noozen/Currency-Exchange/uuid"
)

func main() {
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	config, err := readConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "could not read config: [%v]", err)
		os.Exit(1)
	}

	logger := logrus.ConfigureStandardLogger(
		config.Logging.Format,
		config.Logging.Level,
	)

	idService := &uuid.IDService{}

	userRepository, transactionRepository := connectRepositories(
		ctx,
		logger,
		config,
		idService,
	)

	registry := exchange.NewRegistry(userRepository, idService)

	transactionService := exchange.NewTransactionService(
		transactionRepository,
		userRepository,
		connectEventService(ctx, logger, config),
		logger,
	)

	server := rest.NewServer(registry, transactionService, logger)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop

		cancelCtx()

		if err := server.Shutdown(); err != nil {
			logger.Errorf("could not shut down server: [%v]", err)
		}
	}()

	if err := server.Listen(config.Server.Address); err != nil {
		logger.Fatalf("could not run server: [%v]", err)
	}
}

func connectRepositories(
	ctx context.Context,
	logger exchange.Logger,
	config *Config,
	idService exchange.IDService,
) (exchange.UserRepository, exchange.TransactionRepository) {
	if len(config.Database.Address) == 0 {
		logger.Infof("no database configured; keeping state in memory")
		return inmem.NewUserRepository(), inmem.NewTransactionRepository()
	}

	postgresConfig := &postgres.Config{
		Address:      config.Database.Address,
		User:         config.Database.User,
		Password:     config.Database.Password,
		Name:         config.Database.Name,
		SSLMode:      config.Database.SSLMode,
		MigrationDir: config.Database.MigrationDir,
	}

	if err := postgres.RunMigration(logger, postgresConfig); err != nil {
		logger.Fatalf("could not run database migration: [%v]", err)
	}

	client, err := postgres.NewClient(ctx, postgresConfig, logger)
	if err != nil {
		logger.Fatalf("could not create database client: [%v]", err)
	}

	return postgres.NewUserRepository(client, idService),
		postgres.NewTransactionRepository(client)
}

func connectEventService(
	ctx context.Context,
	logger exchange.Logger,
	config *Config,
) exchange.EventService {
	if len(config.PubSub.Project) == 0 {
		logger.Infof("no pubsub project configured; discarding events")
		return &discardEventService{}
	}

	client, err := pubsub.NewClient(
		ctx,
		config.PubSub.Project,
		config.PubSub.Topic,
	)
	if err != nil {
		logger.Fatalf("could not create pubsub client: [%v]", err)
	}

	return pubsub.NewEventService(client, logger)
}

type discardEventService struct{}

func (des *discardEventService) Publish(event *exchange.Event) {}
