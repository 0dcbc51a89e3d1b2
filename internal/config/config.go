package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/GauravPandit27/construction-saftey/internal/compliance"
)

// Config структура конфигурации приложения
type Config struct {
	Server struct {
		Port        int
		Host        string
		Environment string
	}
	DetectorAPI struct {
		BaseURL string
		Timeout int // в секундах
	}
	Matching compliance.Config
	Storage  struct {
		StaticDir string
	}
	Logging struct {
		Level string
	}
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() *Config {
	cfg := &Config{}

	// Конфигурация сервера
	cfg.Server.Port = getEnvInt("SERVER_PORT", 8080)
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Environment = getEnv("ENVIRONMENT", "development")

	// Конфигурация Python API детекции
	cfg.DetectorAPI.BaseURL = getEnv("DETECTOR_API_BASE_URL", "http://localhost:8000")
	cfg.DetectorAPI.Timeout = getEnvInt("DETECTOR_API_TIMEOUT_SECONDS", 120)

	// Пороги сопоставления СИЗ
	defaults := compliance.DefaultConfig()
	cfg.Matching.HeadFraction = getEnvFloat("HEAD_REGION_FRACTION", defaults.HeadFraction)
	cfg.Matching.FaceFraction = getEnvFloat("FACE_REGION_FRACTION", defaults.FaceFraction)
	cfg.Matching.FaceCenterFraction = getEnvFloat("FACE_CENTER_FRACTION", defaults.FaceCenterFraction)
	cfg.Matching.HelmetThreshold = getEnvFloat("HELMET_CONTAINMENT_THRESHOLD", defaults.HelmetThreshold)
	cfg.Matching.VestThreshold = getEnvFloat("VEST_IOU_THRESHOLD", defaults.VestThreshold)
	cfg.Matching.MaskThreshold = getEnvFloat("MASK_CONTAINMENT_THRESHOLD", defaults.MaskThreshold)

	// Хранилище изображений
	cfg.Storage.StaticDir = getEnv("STATIC_DIR", "static")

	// Конфигурация логирования
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	return cfg
}

// Validate проверяет корректность конфигурации. Ошибка здесь фатальна:
// сервис с некорректными порогами запускаться не должен
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT должен быть в диапазоне 1-65535, получено %d", c.Server.Port)
	}

	if c.DetectorAPI.Timeout <= 0 {
		return fmt.Errorf("DETECTOR_API_TIMEOUT_SECONDS должен быть положительным, получено %d", c.DetectorAPI.Timeout)
	}

	if err := c.Matching.Validate(); err != nil {
		return fmt.Errorf("некорректная конфигурация сопоставления: %w", err)
	}

	return nil
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает int значение переменной окружения или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает float64 значение переменной окружения или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
