package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/GauravPandit27/construction-saftey/internal/model"
	"github.com/GauravPandit27/construction-saftey/internal/repository"
	"github.com/GauravPandit27/construction-saftey/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// InspectionService сервис для работы с инспекциями
type InspectionService struct {
	inspectionRepo repository.InspectionRepository
	logger         *logrus.Logger
	staticDir      string
}

// NewInspectionService создает новый сервис для работы с инспекциями
func NewInspectionService(inspectionRepo repository.InspectionRepository, logger *logrus.Logger, staticDir string) *InspectionService {
	return &InspectionService{
		inspectionRepo: inspectionRepo,
		logger:         logger,
		staticDir:      staticDir,
	}
}

// SaveInspection сохраняет результат анализа: исходное и аннотированное изображения
// в статической папке, статистику и записи о людях в базе данных.
// Возвращает путь к аннотированному изображению
func (s *InspectionService) SaveInspection(inspectionID, imageFilename string, imageData, annotatedData []byte, summary models.ComplianceSummary, persons []models.PersonResult) (string, error) {
	s.logger.Infof("Сохраняем инспекцию %s в базе данных", inspectionID)

	imagePath := ""
	annotatedPath := ""

	if len(imageData) > 0 && imageFilename != "" {
		var err error
		imagePath, err = s.saveImageFile(inspectionID, imageFilename, imageData, "uploads")
		if err != nil {
			s.logger.Errorf("Ошибка сохранения исходного изображения: %v", err)
			return "", fmt.Errorf("failed to save image file: %w", err)
		}
	}

	if len(annotatedData) > 0 {
		var err error
		annotatedPath, err = s.saveImageFile(inspectionID, "annotated.jpg", annotatedData, "outputs")
		if err != nil {
			s.logger.Errorf("Ошибка сохранения аннотированного изображения: %v", err)
			return "", fmt.Errorf("failed to save annotated image: %w", err)
		}
	}

	// Преобразуем результат анализа в модель базы данных
	inspection := &model.Inspection{
		ID:                inspectionID,
		ImageFilename:     imageFilename,
		ImagePath:         imagePath,
		AnnotatedPath:     annotatedPath,
		TotalPersons:      summary.TotalPersons,
		HelmetWearing:     summary.Helmet.Wearing,
		HelmetNotWearing:  summary.Helmet.NotWearing,
		VestWearing:       summary.Vest.Wearing,
		VestNotWearing:    summary.Vest.NotWearing,
		MaskWearing:       summary.Mask.Wearing,
		MaskNotWearing:    summary.Mask.NotWearing,
		ComplianceScore:   summary.ComplianceScore,
		RiskLevel:         summary.RiskLevel,
		Recommendation:    summary.Recommendation,
		IgnoredLabels:     summary.IgnoredLabels,
		DroppedDetections: summary.DroppedDetections,
		UnmatchedItems:    summary.UnmatchedItems,
		CreatedAt:         time.Now(),
	}

	// Преобразуем записи о людях
	for _, person := range persons {
		record := model.PersonRecord{
			InspectionID: inspectionID,
			PersonID:     person.PersonID,
			X1:           person.Box.X1,
			Y1:           person.Box.Y1,
			X2:           person.Box.X2,
			Y2:           person.Box.Y2,
			HelmetStatus: person.Helmet,
			VestStatus:   person.Vest,
			MaskStatus:   person.Mask,
			Color:        person.Color,
			Confidence:   person.Confidence,
		}
		inspection.Persons = append(inspection.Persons, record)
	}

	// Сохраняем в базе данных
	s.logger.Infof("Сохраняем инспекцию в БД. Количество людей: %d", len(inspection.Persons))
	if err := s.inspectionRepo.Create(inspection); err != nil {
		s.logger.Errorf("Ошибка сохранения инспекции в БД: %v", err)
		return "", fmt.Errorf("failed to save inspection to database: %w", err)
	}

	s.logger.Infof("Инспекция %s успешно сохранена в БД с %d записями о людях", inspectionID, len(inspection.Persons))
	return annotatedPath, nil
}

// GetInspectionByID получает инспекцию по ID
func (s *InspectionService) GetInspectionByID(inspectionID string) (*InspectionResponse, error) {
	s.logger.Infof("Получаем инспекцию %s из базы данных", inspectionID)

	inspection, err := s.inspectionRepo.GetByID(inspectionID)
	if err != nil {
		s.logger.Errorf("Ошибка получения инспекции: %v", err)
		return nil, fmt.Errorf("failed to get inspection: %w", err)
	}

	return s.modelToResponse(inspection), nil
}

// ListInspections получает список инспекций с пагинацией
func (s *InspectionService) ListInspections(page, pageSize int) ([]InspectionResponse, int64, error) {
	s.logger.Infof("Получаем список инспекций: страница %d, размер %d", page, pageSize)

	inspections, total, err := s.inspectionRepo.List(page, pageSize)
	if err != nil {
		s.logger.Errorf("Ошибка получения списка инспекций: %v", err)
		return nil, 0, fmt.Errorf("failed to list inspections: %w", err)
	}

	responses := make([]InspectionResponse, len(inspections))
	for i, inspection := range inspections {
		responses[i] = *s.modelToResponse(inspection)
	}

	s.logger.Infof("Получено %d инспекций из %d общих", len(responses), total)
	return responses, total, nil
}

// DeleteInspection удаляет инспекцию по ID вместе с сохраненными изображениями
func (s *InspectionService) DeleteInspection(inspectionID string) error {
	s.logger.Infof("Удаляем инспекцию %s", inspectionID)

	// Сначала получаем инспекцию для удаления файлов изображений
	inspection, err := s.inspectionRepo.GetByID(inspectionID)
	if err != nil {
		s.logger.Errorf("Ошибка получения инспекции для удаления: %v", err)
		return fmt.Errorf("failed to get inspection for deletion: %w", err)
	}

	// Удаляем из базы данных
	if err := s.inspectionRepo.Delete(inspectionID); err != nil {
		s.logger.Errorf("Ошибка удаления инспекции из БД: %v", err)
		return fmt.Errorf("failed to delete inspection from database: %w", err)
	}

	// Удаляем файлы изображений если они существуют
	for _, path := range []string{inspection.ImagePath, inspection.AnnotatedPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil {
			s.logger.Warnf("Не удалось удалить файл %s: %v", path, err)
		} else {
			s.logger.Infof("Файл %s успешно удален", path)
		}
	}

	s.logger.Infof("Инспекция %s успешно удалена", inspectionID)
	return nil
}

// saveImageFile сохраняет файл изображения в статической папке
func (s *InspectionService) saveImageFile(inspectionID, originalFilename string, data []byte, subdir string) (string, error) {
	// Создаем папку для инспекции
	inspectionDir := filepath.Join(s.staticDir, subdir, inspectionID)
	if err := os.MkdirAll(inspectionDir, 0755); err != nil {
		s.logger.Errorf("Ошибка создания директории %s: %v", inspectionDir, err)
		return "", fmt.Errorf("failed to create inspection directory: %w", err)
	}

	// Определяем расширение файла
	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".jpg" // По умолчанию
		s.logger.Warnf("Расширение файла не найдено, используем .jpg")
	}

	filename := fmt.Sprintf("%s%s", inspectionID, ext)
	filePath := filepath.Join(inspectionDir, filename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		s.logger.Errorf("Ошибка записи файла %s: %v", filePath, err)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.logger.Infof("Изображение сохранено: %s (записано %d байт)", filePath, len(data))
	return filePath, nil
}

// modelToResponse преобразует модель базы данных в ответ API
func (s *InspectionService) modelToResponse(inspection *model.Inspection) *InspectionResponse {
	response := &InspectionResponse{
		ID:            inspection.ID,
		ImageFilename: inspection.ImageFilename,
		AnnotatedURL:  inspection.AnnotatedPath,
		Summary: models.ComplianceSummary{
			TotalPersons:      inspection.TotalPersons,
			Helmet:            models.CategoryCount{Wearing: inspection.HelmetWearing, NotWearing: inspection.HelmetNotWearing},
			Vest:              models.CategoryCount{Wearing: inspection.VestWearing, NotWearing: inspection.VestNotWearing},
			Mask:              models.CategoryCount{Wearing: inspection.MaskWearing, NotWearing: inspection.MaskNotWearing},
			ComplianceScore:   inspection.ComplianceScore,
			RiskLevel:         inspection.RiskLevel,
			Recommendation:    inspection.Recommendation,
			IgnoredLabels:     inspection.IgnoredLabels,
			DroppedDetections: inspection.DroppedDetections,
			UnmatchedItems:    inspection.UnmatchedItems,
		},
		CreatedAt: inspection.CreatedAt,
	}

	// Преобразуем записи о людях
	for _, record := range inspection.Persons {
		person := models.PersonResult{
			PersonID:   record.PersonID,
			Box:        models.Box{X1: record.X1, Y1: record.Y1, X2: record.X2, Y2: record.Y2},
			Helmet:     record.HelmetStatus,
			Vest:       record.VestStatus,
			Mask:       record.MaskStatus,
			Color:      record.Color,
			Confidence: record.Confidence,
		}
		response.Persons = append(response.Persons, person)
	}

	return response
}

// GenerateInspectionID генерирует уникальный ID для инспекции
func (s *InspectionService) GenerateInspectionID() string {
	return uuid.New().String()
}
