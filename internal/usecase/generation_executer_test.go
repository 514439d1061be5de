package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/suz-u3n-chu/line-image-bot/internal/domain"
	"github.com/suz-u3n-chu/line-image-bot/pkg/logger"
)

type fakeGenerator struct {
	calls int
	err   error
}

func (g *fakeGenerator) GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &domain.GeneratedImage{Data: []byte{0x89, 0x50, 0x4e, 0x47}, MimeType: "image/png"}, nil
}

type fakeStore struct {
	calls int
	err   error
	url   string
}

func (s *fakeStore) UploadImage(ctx context.Context, image *domain.GeneratedImage) (*domain.HostedImage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.HostedImage{URL: s.url}, nil
}

type fakeMessenger struct {
	pushTexts  []string
	pushImages []string
	pushErr    error
}

func (m *fakeMessenger) ReplyText(ctx context.Context, replyToken, text string) error { return nil }

func (m *fakeMessenger) PushText(ctx context.Context, to, text string) error {
	m.pushTexts = append(m.pushTexts, text)
	return m.pushErr
}

func (m *fakeMessenger) PushImage(ctx context.Context, to, text, imageURL string) error {
	m.pushImages = append(m.pushImages, imageURL)
	return m.pushErr
}

func testJob() domain.GenerateImageJob {
	return domain.GenerateImageJob{RequestID: "req-1", UserID: "U123", Prompt: "夕焼けの富士山"}
}

func newService(gen *fakeGenerator, store *fakeStore, messenger domain.MessengerRepository) *ImageGenerationService {
	return NewImageGenerationService(gen, store, messenger, logger.NewLogger(""), time.Minute)
}

func TestExecute_SuccessCallsEachStepOnce(t *testing.T) {
	gen := &fakeGenerator{}
	store := &fakeStore{url: "https://res.cloudinary.com/demo/image/upload/fuji.png"}
	messenger := &fakeMessenger{}

	err := newService(gen, store, messenger).Execute(context.Background(), testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.calls != 1 {
		t.Errorf("expected 1 generation call, got %d", gen.calls)
	}
	if store.calls != 1 {
		t.Errorf("expected 1 upload call, got %d", store.calls)
	}
	if len(messenger.pushImages) != 1 {
		t.Fatalf("expected 1 image push, got %d", len(messenger.pushImages))
	}
	if messenger.pushImages[0] != store.url {
		t.Errorf("expected push of hosted url %q, got %q", store.url, messenger.pushImages[0])
	}
}

func TestExecute_GenerationFailureSkipsUpload(t *testing.T) {
	gen := &fakeGenerator{err: domain.NewDomainError(domain.ErrCodeExternal, "quota exceeded", errors.New("429"))}
	store := &fakeStore{url: "https://example.test/x.png"}
	messenger := &fakeMessenger{}

	err := newService(gen, store, messenger).Execute(context.Background(), testJob())
	if err == nil {
		t.Fatal("expected an error")
	}

	if store.calls != 0 {
		t.Errorf("expected no upload after generation failure, got %d", store.calls)
	}
	if len(messenger.pushImages) != 0 {
		t.Errorf("expected no image push, got %v", messenger.pushImages)
	}
}

func TestExecute_UploadFailureSkipsPush(t *testing.T) {
	gen := &fakeGenerator{}
	store := &fakeStore{err: domain.NewDomainError(domain.ErrCodeExternal, "upload rejected", nil)}
	messenger := &fakeMessenger{}

	err := newService(gen, store, messenger).Execute(context.Background(), testJob())
	if err == nil {
		t.Fatal("expected an error")
	}

	if len(messenger.pushImages) != 0 {
		t.Errorf("expected no image push after upload failure, got %v", messenger.pushImages)
	}
}

func TestExecute_PushFailureSurfacesError(t *testing.T) {
	gen := &fakeGenerator{}
	store := &fakeStore{url: "https://example.test/x.png"}
	messenger := &fakeMessenger{pushErr: domain.NewDomainError(domain.ErrCodeExternal, "push rejected", nil)}

	err := newService(gen, store, messenger).Execute(context.Background(), testJob())
	if err == nil {
		t.Fatal("expected an error when the final push fails")
	}
}

func TestExecute_SuccessNoticeEchoesPrompt(t *testing.T) {
	gen := &fakeGenerator{}
	store := &fakeStore{url: "https://example.test/fuji.png"}

	var captured string
	messenger := &captureTextMessenger{}
	err := newService(gen, store, messenger).Execute(context.Background(), testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	captured = messenger.imageText
	if !strings.Contains(captured, "夕焼けの富士山") {
		t.Errorf("expected notice to echo the prompt, got %q", captured)
	}
}

type captureTextMessenger struct {
	imageText string
}

func (m *captureTextMessenger) ReplyText(ctx context.Context, replyToken, text string) error {
	return nil
}
func (m *captureTextMessenger) PushText(ctx context.Context, to, text string) error { return nil }
func (m *captureTextMessenger) PushImage(ctx context.Context, to, text, imageURL string) error {
	m.imageText = text
	return nil
}

func TestOnExhausted_PushesFailureNotice(t *testing.T) {
	messenger := &fakeMessenger{}
	completion := NewGenerationJobCompletion(messenger, logger.NewLogger(""))

	completion.OnExhausted(context.Background(), testJob())

	if len(messenger.pushTexts) != 1 {
		t.Fatalf("expected 1 failure notice, got %d", len(messenger.pushTexts))
	}
	if messenger.pushTexts[0] != domain.GenerationFailed {
		t.Errorf("expected failure notice text, got %q", messenger.pushTexts[0])
	}
}
