package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const SendMessage = "send-message"

func (distributor *RedisTaskDistributor) DistributeTaskSendMessage(
	ctx context.Context,
	payload MessagePayload,
	opts ...asynq.Option,
) (err error) {
	// Marshal payload
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	// Create new task
	task := asynq.NewTask(SendMessage, data, opts...)

	// Send task to Redis queue
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	// Log task info
	distributor.logger.Info("Task info", "task_name", SendMessage, "queue", info.Queue, "max_retry", info.MaxRetry)

	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskSendMessage(ctx context.Context, task *asynq.Task) (err error) {
	processor.logger.Info("Start processing task", "task_name", SendMessage)

	// Unmarshal payload
	var payload MessagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	// Push the message to every recipient with a live connection. Offline
	// recipients will see it on their next fetch of the conversation.
	var success int
	for _, recipientID := range payload.RecipientIDs {
		client, ok := processor.presence.Get(recipientID)
		if !ok {
			continue
		}
		if err := client.WriteMessage(payload.Message); err != nil {
			processor.logger.Error(
				fmt.Sprintf("Failed to push message %s to client %s", payload.Message.ID, recipientID),
				"error", err)
			continue
		}
		success++
	}
	processor.logger.Info(fmt.Sprintf("%d / %d recipients pushed", success, len(payload.RecipientIDs)))

	return nil
}
