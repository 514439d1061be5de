package messaging

import (
	"context"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/suz-u3n-chu/line-image-bot/internal/domain"
	"github.com/suz-u3n-chu/line-image-bot/internal/observability"
)

type LineMessenger struct {
	Client *messaging_api.MessagingApiAPI
	Logger domain.LoggingRepository
}

func NewLineMessenger(channelToken string, logger domain.LoggingRepository) (*LineMessenger, error) {
	client, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, domain.NewDomainError(domain.ErrCodeInternal, "failed to create line messaging client", err)
	}
	return &LineMessenger{Client: client, Logger: logger}, nil
}

// ReplyText answers inside the webhook's reply window. Reply tokens are
// single use and expire quickly, so this is only for the interim notice.
func (m LineMessenger) ReplyText(ctx context.Context, replyToken, text string) error {
	_, err := m.Client.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	})
	if err != nil {
		m.Logger.Error("line_reply_failed", "request_id", observability.GetRequestID(ctx), "reason", err.Error())
		return domain.NewDomainError(domain.ErrCodeExternal, "failed to reply message", err)
	}
	return nil
}

func (m LineMessenger) PushText(ctx context.Context, to, text string) error {
	_, err := m.Client.PushMessage(&messaging_api.PushMessageRequest{
		To: to,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	}, "")
	if err != nil {
		m.Logger.Error("line_push_text_failed", "request_id", observability.GetRequestID(ctx), "to", to, "reason", err.Error())
		return domain.NewDomainError(domain.ErrCodeExternal, "failed to push message", err)
	}
	return nil
}

// PushImage delivers the final result: a text message with the prompt echo
// followed by the hosted image, preview and original pointing at the same URL.
func (m LineMessenger) PushImage(ctx context.Context, to, text, imageURL string) error {
	_, err := m.Client.PushMessage(&messaging_api.PushMessageRequest{
		To: to,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
			messaging_api.ImageMessage{
				OriginalContentUrl: imageURL,
				PreviewImageUrl:    imageURL,
			},
		},
	}, "")
	if err != nil {
		m.Logger.Error("line_push_image_failed", "request_id", observability.GetRequestID(ctx), "to", to, "reason", err.Error())
		return domain.NewDomainError(domain.ErrCodeExternal, "failed to push image message", err)
	}
	return nil
}
