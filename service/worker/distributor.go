package worker

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/paperchat/paperchat/chat"
)

// Task distributor interface
type TaskDistributor interface {
	DistributeTaskSendMessage(ctx context.Context, payload MessagePayload, opts ...asynq.Option) (err error)
	DistributeTaskSendNotification(ctx context.Context, payload NotificationPayload, opts ...asynq.Option) (err error)
	DistributeTaskSendReceipt(ctx context.Context, payload ReceiptPayload, opts ...asynq.Option) (err error)
}

// MessagePayload carries a stored message plus the accounts that should see
// it pushed (the DM peer, or every member of the channel's server).
type MessagePayload struct {
	Message      chat.Message `json:"message"`
	RecipientIDs []string     `json:"recipient_ids"`
}

// Redis task distributor
type RedisTaskDistributor struct {
	client *asynq.Client
	logger *slog.Logger
}

// Constructor method for Redis task distributor
func NewRedisTaskDistributor(redisOpt asynq.RedisClientOpt, logger *slog.Logger) TaskDistributor {
	client := asynq.NewClient(redisOpt)
	return &RedisTaskDistributor{
		client: client,
		logger: logger,
	}
}
