package handler

import (
	"io"
	"net/http"

	"github.com/GauravPandit27/construction-saftey/internal/service"
	"github.com/GauravPandit27/construction-saftey/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AnalyzerHandler обработчик для анализа СИЗ
type AnalyzerHandler struct {
	analyzerService *service.AnalyzerService
	logger          *logrus.Logger
}

// NewAnalyzerHandler создает новый обработчик
func NewAnalyzerHandler(analyzerService *service.AnalyzerService, logger *logrus.Logger) *AnalyzerHandler {
	return &AnalyzerHandler{
		analyzerService: analyzerService,
		logger:          logger,
	}
}

// AnalyzePPE обрабатывает запрос на анализ соответствия требованиям СИЗ
// @Summary Анализ СИЗ на изображении
// @Description Детектирует людей и средства защиты, возвращает статистику соответствия
// @Tags analysis
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Изображение для анализа"
// @Success 200 {object} models.AnalyzeResponse
// @Failure 400 {object} gin.H
// @Failure 500 {object} gin.H
// @Router /analyze [post]
func (h *AnalyzerHandler) AnalyzePPE(c *gin.Context) {
	h.logger.Info("Получен запрос на анализ СИЗ")

	// Парсим multipart form
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil { // 32 MB max
		h.logger.Errorf("Ошибка парсинга multipart form: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Ошибка парсинга формы",
		})
		return
	}

	// Получаем файл изображения
	imageFile, header, err := c.Request.FormFile("image")
	if err != nil {
		h.logger.Errorf("Ошибка получения файла изображения: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Файл изображения обязателен",
		})
		return
	}
	defer imageFile.Close()

	// Читаем содержимое файла изображения
	imageData, err := io.ReadAll(imageFile)
	if err != nil {
		h.logger.Errorf("Ошибка чтения файла изображения: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Ошибка чтения файла изображения",
		})
		return
	}

	h.logger.Infof("Прочитано %d байт из файла %s", len(imageData), header.Filename)

	// Создаем запрос для сервиса
	request := models.AnalyzeRequest{
		ImageData:     imageData,
		ImageFilename: header.Filename,
	}

	// Вызываем сервис
	response, err := h.analyzerService.AnalyzePPE(request)
	if err != nil {
		h.logger.Errorf("Ошибка сервиса анализа: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Внутренняя ошибка сервера",
		})
		return
	}

	h.logger.Info("Анализ успешно завершен")
	c.JSON(http.StatusOK, response)
}

// HealthCheck проверяет состояние сервиса
// @Summary Проверка состояния сервиса
// @Description Возвращает информацию о состоянии сервиса и его зависимостей
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /health [get]
func (h *AnalyzerHandler) HealthCheck(c *gin.Context) {
	h.logger.Debug("Получен запрос проверки здоровья")

	health, err := h.analyzerService.CheckHealth()
	if err != nil {
		h.logger.Errorf("Ошибка проверки здоровья: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Ошибка проверки состояния сервиса",
		})
		return
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, health)
}
