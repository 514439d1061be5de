package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/suz-u3n-chu/line-image-bot/internal/adapters"
	"github.com/suz-u3n-chu/line-image-bot/internal/config"
	"github.com/suz-u3n-chu/line-image-bot/internal/domain"
)

type WebhookHandler struct {
	Queue     domain.ImageWorkerPool
	Messenger domain.MessengerRepository
	Limiter   *adapters.SenderRateLimiter
	Config    *config.Config
	Logger    domain.LoggingRepository
}

func NewWebhookHandler(queue domain.ImageWorkerPool, messenger domain.MessengerRepository,
	limiter *adapters.SenderRateLimiter, cfg *config.Config, logger domain.LoggingRepository) *WebhookHandler {
	return &WebhookHandler{Queue: queue, Messenger: messenger, Limiter: limiter, Config: cfg, Logger: logger}
}

func (h *WebhookHandler) HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "LINE Bot is running! 🤖✨")
}

// CallbackHandler receives signed webhook callbacks from the LINE platform.
// The response must go out before the platform's retry timer fires, so text
// events are acknowledged with a reply and handed to the worker pool; the
// generation work itself never runs inside this request.
func (h *WebhookHandler) CallbackHandler(c *gin.Context) {
	reqID := c.GetString("RequestID")
	log := h.Logger.With("service", "webhook", "request_id", reqID)

	cb, err := webhook.ParseRequest(h.Config.LineChannelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			log.Warn("webhook_rejected", "reason", "invalid_signature")
			c.JSON(http.StatusUnauthorized, gin.H{"Message": "invalid signature"})
			return
		}
		log.Warn("webhook_rejected", "reason", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"Message": "invalid request body"})
		return
	}

	for _, event := range cb.Events {
		messageEvent, ok := event.(webhook.MessageEvent)
		if !ok {
			continue
		}
		textMessage, ok := messageEvent.Message.(webhook.TextMessageContent)
		if !ok || strings.TrimSpace(textMessage.Text) == "" {
			continue
		}
		userID := senderUserID(messageEvent.Source)
		if userID == "" {
			continue
		}

		msg := domain.InboundMessage{
			UserID:     userID,
			Text:       textMessage.Text,
			ReplyToken: messageEvent.ReplyToken,
			Timestamp:  time.UnixMilli(messageEvent.Timestamp),
		}

		h.handleTextMessage(c.Request.Context(), log, reqID, msg)
	}

	c.String(http.StatusOK, "OK")
}

// senderUserID extracts the sending user regardless of chat type; group and
// room messages are pushed back to the individual who sent the prompt. The
// platform omits the user ID for senders who have not consented, in which
// case there is nobody to push to.
func senderUserID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	}
	return ""
}

func (h *WebhookHandler) handleTextMessage(ctx context.Context, log domain.LoggingRepository, reqID string, msg domain.InboundMessage) {
	log = log.With("user_id", msg.UserID)
	log.Info("text_message_received", "text_len", len(msg.Text))

	limiter := h.Limiter.RequestRateLimiter(msg.UserID, h.Config.RateLimitCapacity, h.Config.RateLimitFillRate)
	if !limiter.AllowRequest() {
		log.Warn("message_rate_limited")
		if err := h.Messenger.ReplyText(ctx, msg.ReplyToken, domain.TooManyRequestsMsg); err != nil {
			log.Error("rate_limit_reply_failed", "reason", err.Error())
		}
		return
	}

	// Interim notice goes out on the single-use reply token; the final
	// result arrives later as a push message.
	if err := h.Messenger.ReplyText(ctx, msg.ReplyToken, domain.GeneratingNotice); err != nil {
		log.Error("interim_reply_failed", "reason", err.Error())
	}

	job := domain.GenerateImageJob{
		RequestID: reqID,
		UserID:    msg.UserID,
		Prompt:    msg.Text,
	}

	if err := h.Queue.Submit(job); err != nil {
		log.Warn("job_submit_failed", "reason", err.Error())
		if err := h.Messenger.PushText(ctx, msg.UserID, domain.TooManyRequestsMsg); err != nil {
			log.Error("queue_full_notice_failed", "reason", err.Error())
		}
	}
}
