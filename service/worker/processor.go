package worker

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/paperchat/paperchat/service/mail"
	"github.com/paperchat/paperchat/service/notify"
	"github.com/paperchat/paperchat/service/pubsub"
)

// Task processor interface
type TaskProcessor interface {
	Start() error
	ProcessTaskSendMessage(ctx context.Context, task *asynq.Task) (err error)
	ProcessTaskSendNotification(ctx context.Context, task *asynq.Task) (err error)
	ProcessTaskSendReceipt(ctx context.Context, task *asynq.Task) (err error)
}

// Redis task processor
type RedisTaskProcessor struct {
	server      *asynq.Server
	mailService *mail.EmailService
	presence    *pubsub.Hub
	hub         *notify.Hub
	logger      *slog.Logger
}

// Constructor method for Redis task processor
func NewRedisTaskProcessor(
	redisOpts asynq.RedisClientOpt,
	mailService *mail.EmailService,
	presence *pubsub.Hub,
	hub *notify.Hub,
	logger *slog.Logger,
) TaskProcessor {
	return &RedisTaskProcessor{
		server:      asynq.NewServer(redisOpts, asynq.Config{}),
		mailService: mailService,
		presence:    presence,
		hub:         hub,
		logger:      logger,
	}
}

// Method to start the worker server
func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(SendMessage, processor.ProcessTaskSendMessage)
	mux.HandleFunc(SendNotification, processor.ProcessTaskSendNotification)
	mux.HandleFunc(SendReceipt, processor.ProcessTaskSendReceipt)

	return processor.server.Start(mux)
}
