package storage

import (
	"bytes"
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/suz-u3n-chu/line-image-bot/internal/domain"
)

type CloudinaryStore struct {
	Client *cloudinary.Cloudinary
	Folder string
}

// NewCloudinaryStore builds an upload client from a cloudinary:// connection
// URL, which carries the cloud name and API credentials.
func NewCloudinaryStore(connectionURL, folder string) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromURL(connectionURL)
	if err != nil {
		return nil, domain.NewDomainError(domain.ErrCodeInternal, "failed to create cloudinary client", err)
	}
	return &CloudinaryStore{Client: client, Folder: folder}, nil
}

// UploadImage stores the generated bytes and returns the public HTTPS URL.
// The hosted image is owned by Cloudinary from here on; the bot keeps nothing.
func (c CloudinaryStore) UploadImage(ctx context.Context, image *domain.GeneratedImage) (*domain.HostedImage, error) {
	result, err := c.Client.Upload.Upload(ctx, bytes.NewReader(image.Data), uploader.UploadParams{
		Folder:       c.Folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, domain.NewDomainError(domain.ErrCodeExternal, "failed to upload image to cloudinary", err)
	}

	if result.SecureURL == "" {
		return nil, domain.NewDomainError(domain.ErrCodeExternal, "cloudinary returned no secure url", nil)
	}

	return &domain.HostedImage{URL: result.SecureURL}, nil

}
