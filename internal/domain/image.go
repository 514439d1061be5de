package domain

import (
	"context"
)

type GenerateImageRepository interface {
	GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error)
}

type ImageStoreRepository interface {
	UploadImage(ctx context.Context, image *GeneratedImage) (*HostedImage, error)
}

type MessengerRepository interface {
	ReplyText(ctx context.Context, replyToken, text string) error
	PushText(ctx context.Context, to, text string) error
	PushImage(ctx context.Context, to, text, imageURL string) error
}
