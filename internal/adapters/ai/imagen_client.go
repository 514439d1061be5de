package ai

import (
	"context"

	"github.com/suz-u3n-chu/line-image-bot/internal/domain"
	"google.golang.org/genai"
)

type ImagenClient struct {
	Client *genai.Client
	Model  string
}

func NewImagenClient(ctx context.Context, apikey, model string) (*ImagenClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		return nil, domain.NewDomainError(domain.ErrCodeInternal, "failed to create imagen client", err)
	}
	return &ImagenClient{Client: client, Model: model}, nil
}

// GenerateImage asks Imagen for a single image rendered from the user's
// message text. Quota, invalid-key and timeout errors all come back as
// external service errors so the caller can retry.
func (g ImagenClient) GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	resp, err := g.Client.Models.GenerateImages(
		ctx,
		g.Model,
		prompt,
		&genai.GenerateImagesConfig{NumberOfImages: 1})

	if err != nil {
		return nil, domain.NewDomainError(domain.ErrCodeExternal, "failed to generate image from ai model", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, domain.ErrNoImageGenerated
	}

	img := resp.GeneratedImages[0].Image

	return &domain.GeneratedImage{Data: img.ImageBytes, MimeType: img.MIMEType}, nil

}
