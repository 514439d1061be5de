package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/suz-u3n-chu/line-image-bot/internal/domain"
)

type ImageGenerationService struct {
	AI        domain.GenerateImageRepository
	Store     domain.ImageStoreRepository
	Messenger domain.MessengerRepository
	Logger    domain.LoggingRepository
	Timeout   time.Duration
}

func NewImageGenerationService(
	ai domain.GenerateImageRepository,
	store domain.ImageStoreRepository,
	messenger domain.MessengerRepository,
	logger domain.LoggingRepository,
	timeout time.Duration,
) *ImageGenerationService {
	return &ImageGenerationService{AI: ai, Store: store, Messenger: messenger, Logger: logger, Timeout: timeout}
}

// Execute runs the full pipeline for one message: generate the image from
// the prompt, upload the bytes, push the hosted URL to the sender. A failed
// generation stops the pipeline before any upload is attempted.
func (s *ImageGenerationService) Execute(ctx context.Context, job domain.GenerateImageJob) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	log := s.Logger.With(
		"service", "image_generation",
		"request_id", job.RequestID,
		"user_id", job.UserID)

	log.Info("image_generation_started", "prompt", job.Prompt)

	genStart := time.Now()
	image, err := s.AI.GenerateImage(ctx, job.Prompt)
	genDuration := time.Since(genStart)
	if err != nil {
		log.Error("image_generation_ai_failed",
			"reason", err.Error(),
			"duration_ms", genDuration.Milliseconds())
		return err
	}

	log.Info("image_generated",
		"mime_type", image.MimeType,
		"size_bytes", len(image.Data),
		"duration_ms", genDuration.Milliseconds())

	uploadStart := time.Now()
	hosted, err := s.Store.UploadImage(ctx, image)
	uploadDuration := time.Since(uploadStart)
	if err != nil {
		log.Error("image_upload_failed",
			"reason", err.Error(),
			"duration_ms", uploadDuration.Milliseconds())
		return err
	}

	log.Info("image_uploaded", "image_url", hosted.URL, "duration_ms", uploadDuration.Milliseconds())

	err = s.Messenger.PushImage(ctx, job.UserID, fmt.Sprintf(domain.GeneratedNotice, job.Prompt), hosted.URL)
	if err != nil {
		log.Error("image_push_failed", "reason", err.Error())
		return err
	}

	log.Info("image_generation_completed", "image_url", hosted.URL)

	return nil

}
