package worker

import (
	"context"
	"encoding/json"
	"html/template"
	"strings"

	"github.com/hibiken/asynq"
)

// ReceiptPayload carries what the donation receipt email needs. Email may be
// empty: only accounts created through OAuth carry one, and the task then
// degrades to a log line.
type ReceiptPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Code     string `json:"code"`
}

const SendReceipt = "send-donation-receipt"

var receiptTemplate = template.Must(template.New("receipt").Parse(`
<h2>Thank you, {{.Username}}!</h2>
<p>Your donation confirmation <strong>{{.Code}}</strong> has been recorded
and PaperChat Pro is now unlocked on your account.</p>
`))

func (distributor *RedisTaskDistributor) DistributeTaskSendReceipt(
	ctx context.Context,
	payload ReceiptPayload,
	opts ...asynq.Option,
) (err error) {
	// Marshal payload
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	// Create new task
	task := asynq.NewTask(SendReceipt, data, opts...)

	// Send task to Redis queue
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	// Log task info
	distributor.logger.Info("Task info", "task_name", SendReceipt, "queue", info.Queue, "max_retry", info.MaxRetry)

	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskSendReceipt(ctx context.Context, task *asynq.Task) (err error) {
	processor.logger.Info("Start processing task", "task_name", SendReceipt)

	// Unmarshal payload
	var payload ReceiptPayload
	if err = json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if payload.Email == "" {
		processor.logger.Info("Account has no email on file, skipping receipt", "username", payload.Username)
		return nil
	}

	// Prepare HTML email body
	var body strings.Builder
	if err = receiptTemplate.Execute(&body, payload); err != nil {
		return err
	}

	return processor.mailService.SendEmail(payload.Email, "Your PaperChat Pro receipt", body.String())
}
