package usecase

import (
	"context"

	"github.com/suz-u3n-chu/line-image-bot/internal/domain"
)

type GenerationJobCompletion struct {
	Messenger domain.MessengerRepository
	Logger    domain.LoggingRepository
}

func NewGenerationJobCompletion(messenger domain.MessengerRepository, logger domain.LoggingRepository) *GenerationJobCompletion {
	return &GenerationJobCompletion{Messenger: messenger, Logger: logger}
}

// OnExhausted tells the sender the request failed after every retry was
// spent. The user must never be left waiting in silence; a failed notice
// push is logged but not retried further.
func (c *GenerationJobCompletion) OnExhausted(ctx context.Context, job domain.GenerateImageJob) {
	log := c.Logger.With(
		"service", "job_completion",
		"request_id", job.RequestID,
		"user_id", job.UserID)

	if err := c.Messenger.PushText(ctx, job.UserID, domain.GenerationFailed); err != nil {
		log.Error("failure_notice_push_failed", "reason", err.Error())
		return
	}

	log.Info("failure_notice_sent")
}
