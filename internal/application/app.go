package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/suz-u3n-chu/line-image-bot/internal/adapters"
	"github.com/suz-u3n-chu/line-image-bot/internal/adapters/ai"
	"github.com/suz-u3n-chu/line-image-bot/internal/adapters/messaging"
	"github.com/suz-u3n-chu/line-image-bot/internal/adapters/storage"
	"github.com/suz-u3n-chu/line-image-bot/internal/config"
	"github.com/suz-u3n-chu/line-image-bot/internal/handler"
	"github.com/suz-u3n-chu/line-image-bot/internal/queue"
	"github.com/suz-u3n-chu/line-image-bot/internal/router"
	"github.com/suz-u3n-chu/line-image-bot/internal/usecase"
	"github.com/suz-u3n-chu/line-image-bot/pkg/logger"
)

type App struct {
	Cfg *config.Config
}

func (a App) Run() {

	rootctx, rootcancel := context.WithCancel(context.Background())
	defer rootcancel()

	logger := logger.NewLogger(a.Cfg.LogFile)

	messenger, err := messaging.NewLineMessenger(a.Cfg.LineChannelToken, logger)
	if err != nil {
		logger.Error("failed to create line messaging client", "reason", err.Error())
		panic(err)
	}

	imagenClient, err := ai.NewImagenClient(rootctx, a.Cfg.GoogleAPIKey, a.Cfg.ImagenModel)
	if err != nil {
		logger.Error("failed to create imagen client", "reason", err.Error())
		panic(err)
	}

	imageStore, err := storage.NewCloudinaryStore(a.Cfg.CloudinaryURL, a.Cfg.UploadFolder)
	if err != nil {
		logger.Error("failed to create cloudinary client", "reason", err.Error())
		panic(err)
	}

	senderLimiter := adapters.NewSenderLimiter()

	generationExecuter := usecase.NewImageGenerationService(
		imagenClient,
		imageStore,
		messenger,
		logger,
		time.Duration(a.Cfg.GenerationTimeout)*time.Second)
	jobCompletionHandler := usecase.NewGenerationJobCompletion(messenger, logger)

	workerPool := queue.NewWorkerPool(rootctx, a.Cfg.WorkerCounts, a.Cfg.JobQueueSize, a.Cfg.JobRetryCount,
		logger, generationExecuter, jobCompletionHandler)
	workerPool.Start()

	h := handler.NewWebhookHandler(workerPool, messenger, senderLimiter, a.Cfg, logger)

	routerCfg := router.RouterConfig{WebhookHandler: h, Logger: logger}

	g := router.SetupRoutes(routerCfg)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.Cfg.ServerPort),
		Handler: g,
	}

	go func() {
		logger.Info("server_starting", "port", a.Cfg.ServerPort)
		serverErr := server.ListenAndServe()
		if serverErr != nil && !errors.Is(serverErr, http.ErrServerClosed) {
			logger.Error("failed to start the server", "reason", serverErr.Error())
		}
	}()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
	<-sigchan

	shutdownctx, shutdowncancelFunc := context.WithTimeout(context.Background(), time.Duration(a.Cfg.ServerShutdownTimeout)*time.Second)
	defer shutdowncancelFunc()
	if err := server.Shutdown(shutdownctx); err != nil {
		logger.Error("server closed with error", "reason", err.Error())
	}

	// Queued generations drain before the process exits; nothing is persisted.
	workerPool.Close()
	workerPool.Wait()
	workerPool.Cancel()

	logger.Info("server_stopped")

}
