package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort            int     `mapstructure:"PORT" validate:"required,gte=1,lte=65535"`
	LineChannelToken      string  `mapstructure:"LINE_CHANNEL_ACCESS_TOKEN" validate:"required"`
	LineChannelSecret     string  `mapstructure:"LINE_CHANNEL_SECRET" validate:"required"`
	GoogleAPIKey          string  `mapstructure:"GOOGLE_API_KEY" validate:"required"`
	CloudinaryURL         string  `mapstructure:"CLOUDINARY_URL" validate:"required"`
	ImagenModel           string  `mapstructure:"IMAGEN_MODEL" validate:"required"`
	UploadFolder          string  `mapstructure:"UPLOAD_FOLDER" validate:"required"`
	WorkerCounts          int     `mapstructure:"NUM_WORKERS" validate:"required,gte=1"`
	JobQueueSize          int     `mapstructure:"JOB_QUEUE_SIZE" validate:"required,gte=1"`
	JobRetryCount         int     `mapstructure:"JOB_RETRY_COUNT" validate:"gte=0"`
	RateLimitCapacity     float64 `mapstructure:"RATE_LIMITER_CAPACITY" validate:"required,gte=0"`
	RateLimitFillRate     float64 `mapstructure:"RATE_LIMITER_FILL_RATE" validate:"required,gte=0"`
	MaxAllowedSize        int     `mapstructure:"JSON_BODY_MAX_SIZE" validate:"required,gte=0"`
	GenerationTimeout     int     `mapstructure:"GENERATION_TIMEOUT" validate:"required,gte=1"`
	ServerShutdownTimeout int     `mapstructure:"SERVER_SHUTDOWN_TIMEOUT" validate:"required,gte=0"`
	LogFile               string  `mapstructure:"LOG_FILE"`
}

// configKeys lists every key we read, so AutomaticEnv can resolve them even
// when no .env file is present (viper only unmarshals keys it knows about).
var configKeys = []string{
	"PORT",
	"LINE_CHANNEL_ACCESS_TOKEN",
	"LINE_CHANNEL_SECRET",
	"GOOGLE_API_KEY",
	"CLOUDINARY_URL",
	"IMAGEN_MODEL",
	"UPLOAD_FOLDER",
	"NUM_WORKERS",
	"JOB_QUEUE_SIZE",
	"JOB_RETRY_COUNT",
	"RATE_LIMITER_CAPACITY",
	"RATE_LIMITER_FILL_RATE",
	"JSON_BODY_MAX_SIZE",
	"GENERATION_TIMEOUT",
	"SERVER_SHUTDOWN_TIMEOUT",
	"LOG_FILE",
}

func setDefaults() {
	viper.SetDefault("PORT", 5000)
	viper.SetDefault("IMAGEN_MODEL", "imagen-3.0-generate-002")
	viper.SetDefault("UPLOAD_FOLDER", "line-bot-images")
	viper.SetDefault("NUM_WORKERS", 4)
	viper.SetDefault("JOB_QUEUE_SIZE", 64)
	viper.SetDefault("JOB_RETRY_COUNT", 2)
	viper.SetDefault("RATE_LIMITER_CAPACITY", 3)
	viper.SetDefault("RATE_LIMITER_FILL_RATE", 0.2)
	viper.SetDefault("JSON_BODY_MAX_SIZE", 1<<20)
	viper.SetDefault("GENERATION_TIMEOUT", 120)
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10)
	viper.SetDefault("LOG_FILE", "")
}

// LoadConfigs reads configuration from the environment, optionally layered
// over a .env style file. Secrets are always taken from the process
// environment in deployment; the file path exists for local runs.
func LoadConfigs(path string) (*Config, error) {

	viper.Reset()
	setDefaults()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	viper.AutomaticEnv()
	for _, key := range configKeys {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var Cfg Config

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(Cfg)
	if err != nil {
		return nil, err
	}

	return &Cfg, nil

}
