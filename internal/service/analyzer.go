package service

import (
	"fmt"
	"time"

	"github.com/GauravPandit27/construction-saftey/internal/client"
	"github.com/GauravPandit27/construction-saftey/internal/compliance"
	"github.com/GauravPandit27/construction-saftey/internal/render"
	"github.com/GauravPandit27/construction-saftey/pkg/models"

	"github.com/sirupsen/logrus"
)

// AnalyzerService сервис анализа соответствия требованиям СИЗ
type AnalyzerService struct {
	detectorClient *client.DetectorAPIClient
	pipeline       *compliance.Pipeline
	annotator      *render.Annotator
	inspections    *InspectionService
	logger         *logrus.Logger
}

// NewAnalyzerService создает новый сервис анализатора
func NewAnalyzerService(detectorClient *client.DetectorAPIClient, pipeline *compliance.Pipeline, annotator *render.Annotator, inspections *InspectionService, logger *logrus.Logger) *AnalyzerService {
	return &AnalyzerService{
		detectorClient: detectorClient,
		pipeline:       pipeline,
		annotator:      annotator,
		inspections:    inspections,
		logger:         logger,
	}
}

// AnalyzePPE анализирует изображение на соответствие требованиям СИЗ
func (s *AnalyzerService) AnalyzePPE(request models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	s.logger.Infof("Начинаем анализ СИЗ для изображения %s", request.ImageFilename)

	startTime := time.Now()

	// 1. Отправляем изображение в Python API для получения детекций
	detectorResp, err := s.detectorClient.DetectObjects(request)
	if err != nil {
		s.logger.Errorf("Ошибка при обращении к Python API: %v", err)
		return &models.AnalyzeResponse{
			Status:  "error",
			Message: fmt.Sprintf("Ошибка детекции нейронной сетью: %v", err),
		}, nil
	}

	if detectorResp.Status != "success" {
		s.logger.Errorf("Python API вернул ошибку: %s", detectorResp.Message)
		return &models.AnalyzeResponse{
			Status:  "error",
			Message: fmt.Sprintf("Ошибка от Python API: %s", detectorResp.Message),
		}, nil
	}

	s.logger.Infof("Получили %d детекций от нейронной сети", len(detectorResp.Detections))

	// 2. Прогоняем детекции через конвейер анализа соответствия
	result := s.pipeline.Analyze(detectorResp.Detections, detectorResp.ImageWidth, detectorResp.ImageHeight)

	s.logger.Infof("Анализ соответствия: %d человек, уровень риска %s, соответствие %d%%",
		result.Summary.TotalPersons, result.Summary.RiskLevel, result.Summary.ComplianceScore)

	// 3. Рисуем аннотации поверх исходного изображения.
	// Ошибка отрисовки не прерывает анализ: статистика уже вычислена
	var annotatedData []byte
	annotatedData, err = s.annotator.Annotate(request.ImageData, result.Persons)
	if err != nil {
		s.logger.Errorf("Ошибка аннотирования изображения: %v", err)
		annotatedData = nil
	}

	// 4. Сохраняем инспекцию в базе данных
	inspectionID := s.inspections.GenerateInspectionID()
	annotatedPath, err := s.inspections.SaveInspection(
		inspectionID,
		request.ImageFilename,
		request.ImageData,
		annotatedData,
		result.Summary,
		result.Persons,
	)
	if err != nil {
		// Результат анализа уже получен, поэтому ошибку сохранения не считаем фатальной
		s.logger.Errorf("Ошибка сохранения инспекции: %v", err)
		inspectionID = ""
		annotatedPath = ""
	}

	processingTime := time.Since(startTime)
	s.logger.Infof("Анализ завершен за %v", processingTime)

	return &models.AnalyzeResponse{
		Status:       "success",
		Message:      "Анализ СИЗ успешно завершен",
		InspectionID: inspectionID,
		Summary:      result.Summary,
		Persons:      result.Persons,
		AnnotatedURL: annotatedPath,
	}, nil
}

// CheckHealth проверяет состояние сервиса и его зависимостей
func (s *AnalyzerService) CheckHealth() (*models.HealthResponse, error) {
	s.logger.Debug("Проверяем состояние сервиса анализатора")

	// Проверяем состояние Python API
	detectorHealth, err := s.detectorClient.CheckHealth()
	if err != nil {
		s.logger.Errorf("Python API недоступен: %v", err)
		return &models.HealthResponse{
			Status:      "unhealthy",
			ModelLoaded: false,
			Version:     "1.0.0",
		}, nil
	}

	// Если Python API здоров, возвращаем его статус
	return detectorHealth, nil
}
