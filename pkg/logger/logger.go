package logger

import (
	"log/slog"
	"os"

	"github.com/suz-u3n-chu/line-image-bot/internal/domain"
)

type Logger struct {
	SlogLogger *slog.Logger
}

// NewLogger writes JSON logs to the given file, or to stdout when the path
// is empty (the Cloud Run / Render case).
func NewLogger(loggingFilePath string) *Logger {
	out := os.Stdout
	if loggingFilePath != "" {
		file, err := os.Create(loggingFilePath)
		if err != nil {
			panic(err)
		}
		out = file
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))

	return &Logger{SlogLogger: logger}
}

func (l Logger) Info(msg string, args ...interface{}) {
	l.SlogLogger.Info(msg, args...)

}

func (l Logger) Warn(msg string, args ...interface{}) {
	l.SlogLogger.Warn(msg, args...)
}

func (l Logger) Error(msg string, args ...interface{}) {
	l.SlogLogger.Error(msg, args...)

}

func (l Logger) With(args ...any) domain.LoggingRepository {
	return &Logger{
		SlogLogger: l.SlogLogger.With(args...),
	}
}
