package domain

import "time"

const (
	GeneratingNotice   = "🎨 画像を生成中です... しばらくお待ちください"
	GeneratedNotice    = "✨ 画像が生成されました！\n\nプロンプト: %s"
	GenerationFailed   = "❌ 画像生成中にエラーが発生しました。しばらくしてからもう一度お試しください"
	TooManyRequestsMsg = "⏳ リクエストが多すぎます。少し待ってからもう一度お試しください"
)

// InboundMessage is one text message lifted out of a webhook callback.
// It only lives for the duration of that request.
type InboundMessage struct {
	UserID     string
	Text       string
	ReplyToken string
	Timestamp  time.Time
}

// GeneratedImage holds raw model output until it is uploaded.
type GeneratedImage struct {
	Data     []byte
	MimeType string
}

// HostedImage is the public URL the storage provider returned for an upload.
type HostedImage struct {
	URL string
}
