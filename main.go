package main

import (
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/paperchat/paperchat/api"
	"github.com/paperchat/paperchat/chat"
	"github.com/paperchat/paperchat/db"
	"github.com/paperchat/paperchat/service/mail"
	"github.com/paperchat/paperchat/service/notify"
	"github.com/paperchat/paperchat/service/pubsub"
	"github.com/paperchat/paperchat/service/security"
	"github.com/paperchat/paperchat/service/worker"
	"github.com/paperchat/paperchat/util"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load config from .env
	config := util.LoadConfig(".env")

	// Pick the snapshot backend
	var store chat.SnapshotStore
	switch config.SnapshotBackend {
	case "postgres":
		queries, err := db.NewQueries(config)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err = queries.AutoMigration(); err != nil {
			logger.Error("Failed to run auto migration", "error", err)
			os.Exit(1)
		}
		store = db.NewSnapshotStore(queries)
	case "redis":
		store = db.NewRedisSnapshotStore(config.RedisAddr)
	default:
		logger.Warn("No persistent snapshot backend configured, state is lost on restart")
		store = chat.NewMemoryStore()
	}

	// Pick the secret scheme
	var scheme chat.SecretScheme = chat.PlainScheme{}
	if config.HashSecrets {
		scheme = security.BcryptScheme{}
	}

	// Build the chat core on top of the snapshot store
	core, err := chat.NewCore(store, chat.Options{
		MinSecretLen: config.MinSecretLen,
		Entitlement:  chat.Entitlement(config.Entitlement),
		Scheme:       scheme,
	}, logger)
	if err != nil {
		logger.Error("Failed to load chat state", "error", err)
		os.Exit(1)
	}

	// Create hubs and the background worker
	presence := pubsub.NewHub()
	hub := notify.NewHub()
	redisOpt := asynq.RedisClientOpt{Addr: config.RedisAddr}
	distributor := worker.NewRedisTaskDistributor(redisOpt, logger)
	processor := worker.NewRedisTaskProcessor(redisOpt, mail.NewEmailService(config), presence, hub, logger)

	go func() {
		if err := processor.Start(); err != nil {
			logger.Error("Failed to start the task processor", "error", err)
			os.Exit(1)
		}
	}()

	// Create and start server
	server := api.NewServer(core, config, presence, hub, distributor, logger)
	if err = server.Start(); err != nil {
		logger.Error("Failed to run the server or server shutdown unexpectedly", "error", err)
		os.Exit(1)
	}
}
