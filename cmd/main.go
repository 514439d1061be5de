package main

import (
	"os"

	"github.com/suz-u3n-chu/line-image-bot/internal/application"
	"github.com/suz-u3n-chu/line-image-bot/internal/config"
)

func main() {

	// Secrets come from the process environment in deployment; an optional
	// env file covers local runs.
	cfg, err := config.LoadConfigs(os.Getenv("ENV_FILE"))
	if err != nil {
		panic(err)
	}

	app := application.App{Cfg: cfg}
	app.Run()

}
