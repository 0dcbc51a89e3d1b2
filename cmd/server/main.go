package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/GauravPandit27/construction-saftey/internal/client"
	"github.com/GauravPandit27/construction-saftey/internal/compliance"
	"github.com/GauravPandit27/construction-saftey/internal/config"
	"github.com/GauravPandit27/construction-saftey/internal/database"
	"github.com/GauravPandit27/construction-saftey/internal/handler"
	"github.com/GauravPandit27/construction-saftey/internal/render"
	"github.com/GauravPandit27/construction-saftey/internal/repository"
	"github.com/GauravPandit27/construction-saftey/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Инициализируем логгер
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.Info("Запуск PPE Compliance API Server")

	// Загружаем и проверяем конфигурацию
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Некорректная конфигурация: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Инициализируем базу данных
	logger.Info("Подключение к базе данных...")
	if err := database.Connect(); err != nil {
		logger.Fatalf("Ошибка подключения к базе данных: %v", err)
	}

	// Выполняем миграции
	logger.Info("Выполнение миграций базы данных...")
	if err := database.Migrate(); err != nil {
		logger.Fatalf("Ошибка выполнения миграций: %v", err)
	}

	// Проверяем здоровье базы данных
	if err := database.HealthCheck(); err != nil {
		logger.Fatalf("База данных недоступна: %v", err)
	}

	logger.Info("База данных успешно подключена и готова к работе")

	// Создаем папку для статических файлов
	staticDir := filepath.Join(".", cfg.Storage.StaticDir)
	if err := os.MkdirAll(staticDir, 0755); err != nil {
		logger.Fatalf("Ошибка создания папки для статических файлов: %v", err)
	}

	// Инициализируем репозитории
	inspectionRepo := repository.NewInspectionRepository(database.DB)

	// Инициализируем сервисы
	detectorClient := client.NewDetectorAPIClient(
		cfg.DetectorAPI.BaseURL,
		time.Duration(cfg.DetectorAPI.Timeout)*time.Second,
		logger,
	)
	pipeline := compliance.NewPipeline(cfg.Matching, logger)
	annotator := render.NewAnnotator(logger)
	inspectionService := service.NewInspectionService(inspectionRepo, logger, staticDir)
	analyzerService := service.NewAnalyzerService(detectorClient, pipeline, annotator, inspectionService, logger)

	// Инициализируем обработчики
	analyzerHandler := handler.NewAnalyzerHandler(analyzerService, logger)
	inspectionHandler := handler.NewInspectionHandler(analyzerHandler, inspectionService, logger)

	// Настраиваем Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Добавляем middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Обслуживание статических файлов
	router.Static("/static", staticDir)

	// Регистрируем маршруты
	inspectionHandler.RegisterRoutes(router)

	// Добавляем базовый маршрут для проверки
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "PPE Compliance API Server",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	// Запускаем сервер
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Сервер запущен на порту %d", cfg.Server.Port)
	logger.Infof("API доступно по адресу: http://localhost:%d/api/v1", cfg.Server.Port)

	if err := router.Run(serverAddr); err != nil {
		logger.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

// corsMiddleware добавляет заголовки CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
