package handler

import (
	"net/http"
	"strconv"

	"github.com/GauravPandit27/construction-saftey/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// InspectionHandler обрабатывает HTTP запросы для работы с инспекциями
type InspectionHandler struct {
	analyzerHandler   *AnalyzerHandler
	inspectionService *service.InspectionService
	logger            *logrus.Logger
}

// NewInspectionHandler создает новый экземпляр InspectionHandler
func NewInspectionHandler(analyzerHandler *AnalyzerHandler, inspectionService *service.InspectionService, logger *logrus.Logger) *InspectionHandler {
	return &InspectionHandler{
		analyzerHandler:   analyzerHandler,
		inspectionService: inspectionService,
		logger:            logger,
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *InspectionHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/analyze", h.analyzerHandler.AnalyzePPE)
		api.GET("/inspections", h.ListInspections)
		api.GET("/inspections/:id", h.GetInspection)
		api.DELETE("/inspections/:id", h.DeleteInspection)
		api.GET("/inspections/:id/image", h.GetInspectionImage)
		api.GET("/health", h.analyzerHandler.HealthCheck)
	}
}

// ListInspections возвращает список инспекций с пагинацией
func (h *InspectionHandler) ListInspections(c *gin.Context) {
	h.logger.Info("Получен запрос на получение списка инспекций")

	// Получаем параметры пагинации
	pageStr := c.DefaultQuery("page", "1")
	sizeStr := c.DefaultQuery("size", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 || size > 100 {
		size = 10
	}

	// Получаем инспекции
	inspections, total, err := h.inspectionService.ListInspections(page, size)
	if err != nil {
		h.logger.Errorf("Ошибка получения списка инспекций: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения списка инспекций"})
		return
	}

	response := service.ListInspectionsResponse{
		Inspections: inspections,
		Total:       total,
		Page:        page,
		Size:        size,
	}

	h.logger.Infof("Возвращено %d инспекций из %d", len(inspections), total)
	c.JSON(http.StatusOK, response)
}

// GetInspection возвращает инспекцию по ID
func (h *InspectionHandler) GetInspection(c *gin.Context) {
	inspectionID := c.Param("id")
	h.logger.Infof("Получен запрос на получение инспекции с ID: %s", inspectionID)

	inspection, err := h.inspectionService.GetInspectionByID(inspectionID)
	if err != nil {
		h.logger.Errorf("Ошибка получения инспекции: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Инспекция не найдена"})
		return
	}

	h.logger.Info("Инспекция найдена и возвращена")
	c.JSON(http.StatusOK, inspection)
}

// DeleteInspection удаляет инспекцию по ID
func (h *InspectionHandler) DeleteInspection(c *gin.Context) {
	inspectionID := c.Param("id")
	h.logger.Infof("Получен запрос на удаление инспекции с ID: %s", inspectionID)

	if err := h.inspectionService.DeleteInspection(inspectionID); err != nil {
		h.logger.Errorf("Ошибка удаления инспекции: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка удаления инспекции"})
		return
	}

	h.logger.Info("Инспекция успешно удалена")
	c.JSON(http.StatusOK, gin.H{"message": "Инспекция успешно удалена"})
}

// GetInspectionImage возвращает аннотированное изображение инспекции
func (h *InspectionHandler) GetInspectionImage(c *gin.Context) {
	inspectionID := c.Param("id")
	if inspectionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inspection ID is required"})
		return
	}

	inspection, err := h.inspectionService.GetInspectionByID(inspectionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "inspection not found"})
		return
	}

	if inspection.AnnotatedURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "annotated image not found for this inspection"})
		return
	}

	// Отправляем файл изображения
	c.File(inspection.AnnotatedURL)
}
