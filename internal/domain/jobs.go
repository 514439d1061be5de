package domain

import (
	"context"
)

// GenerateImageJob carries everything a worker needs to turn one inbound
// text message into a pushed image URL.
type GenerateImageJob struct {
	RequestID  string
	UserID     string
	Prompt     string
	RetryCount int
}

type ImageWorkerPool interface {
	Submit(job GenerateImageJob) error
	Start()
	Cancel()
	Wait()
	Close()
}

type JobExecuter interface {
	Execute(ctx context.Context, job GenerateImageJob) error
}

type JobCompletionHandler interface {
	OnExhausted(ctx context.Context, job GenerateImageJob)
}
