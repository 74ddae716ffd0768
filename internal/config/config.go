package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Analysis AnalysisConfig
	Services ServicesConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AnalysisConfig struct {
	AssemblyAIKey      string
	WhisperModel       string
	TempDir            string
	OutputDir          string
	ResultTTLHours     int
	WorkerCount        int
	FacialIntervalSecs int
}

// ServicesConfig holds the endpoints of the HTTP collaborators the
// pipeline delegates ML inference and chart rendering to. Loaded from
// a YAML file so deployments can point at their own sidecars.
type ServicesConfig struct {
	Sentiment     Service `yaml:"sentiment"`
	FacialEmotion Service `yaml:"facial_emotion"`
	Visualization Service `yaml:"visualization"`
}

type Service struct {
	URL string `yaml:"url"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	resultTTL, _ := strconv.Atoi(getEnv("RESULT_TTL_HOURS", "24"))
	workers, _ := strconv.Atoi(getEnv("WORKER_COUNT", "4"))
	facialInterval, _ := strconv.Atoi(getEnv("FACIAL_INTERVAL_SECONDS", "1"))

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Analysis: AnalysisConfig{
			AssemblyAIKey:      getEnv("ASSEMBLYAI_API_KEY", ""),
			WhisperModel:       getEnv("WHISPER_MODEL", "tiny"),
			TempDir:            getEnv("TEMP_DIR", "/tmp/cooper-analysis"),
			OutputDir:          getEnv("OUTPUT_DIR", "output"),
			ResultTTLHours:     resultTTL,
			WorkerCount:        workers,
			FacialIntervalSecs: facialInterval,
		},
	}

	services, err := loadServices(getEnv("SERVICES_CONFIG", "config/services.yaml"))
	if err != nil {
		logrus.WithError(err).Warn("No services config found, collaborator services disabled")
	} else {
		cfg.Services = *services
	}

	return cfg
}

func loadServices(path string) (*ServicesConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open services config: %w", err)
	}
	defer f.Close()

	var svc ServicesConfig
	if err := yaml.NewDecoder(f).Decode(&svc); err != nil {
		return nil, fmt.Errorf("decode services config: %w", err)
	}
	return &svc, nil
}

func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
