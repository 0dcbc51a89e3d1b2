package compliance

import (
	"github.com/GauravPandit27/construction-saftey/internal/geometry"
	"github.com/GauravPandit27/construction-saftey/pkg/models"

	"github.com/sirupsen/logrus"
)

// Рекомендации по уровням риска площадки
const (
	recommendationLow    = "Site is compliant. Maintain existing safety protocols."
	recommendationMedium = "Partial compliance detected. Increase supervision and PPE enforcement."
	recommendationHigh   = "Critical safety risk identified. Immediate corrective action required."
)

// Pipeline полный конвейер анализа соответствия требованиям СИЗ для одного
// изображения: разбиение детекций, три сопоставителя, агрегация.
// Конвейер не хранит состояния между вызовами и безопасен для параллельного
// использования несколькими запросами
type Pipeline struct {
	cfg    Config
	geom   *geometry.Calculator
	part   *Partitioner
	logger *logrus.Logger
}

// NewPipeline создает новый конвейер анализа
func NewPipeline(cfg Config, logger *logrus.Logger) *Pipeline {
	geom := geometry.NewCalculator()

	return &Pipeline{
		cfg:    cfg,
		geom:   geom,
		part:   NewPartitioner(geom, logger),
		logger: logger,
	}
}

// Result результат работы конвейера для одного изображения
type Result struct {
	Persons []models.PersonResult
	Summary models.ComplianceSummary
}

// Analyze прогоняет список детекций через полный конвейер анализа.
// Результат полностью определяется входным списком: повторный запуск
// на тех же детекциях дает идентичный результат
func (p *Pipeline) Analyze(detections []models.Detection, imgWidth, imgHeight int) *Result {
	groups := p.part.Partition(detections, imgWidth, imgHeight)

	if len(groups.Persons) == 0 {
		// Отсутствие людей не считается ошибкой: возвращаем нулевую статистику
		p.logger.Info("Люди на изображении не обнаружены")
	}

	unmatched := 0

	// Каска: доля рамки каски внутри области головы
	helmetMatcher := NewMatcher(func(item, person models.Box) float64 {
		return p.geom.ContainmentFraction(item, p.geom.HeadRegion(person, p.cfg.HeadFraction))
	}, p.cfg.HelmetThreshold)

	helmetAssigned, n := helmetMatcher.Match(groups.Persons, groups.Helmets)
	unmatched += n
	for i, detIndex := range helmetAssigned {
		if detIndex >= 0 {
			groups.Persons[i].Record.Helmet = StatusCompliant
		}
	}

	// Жилет: IoU рамки жилета с рамкой человека. Порог ниже обычного порога
	// слияния детекций, так как жилет закрывает только торс
	vestMatcher := NewMatcher(func(item, person models.Box) float64 {
		return p.geom.IoU(item, person)
	}, p.cfg.VestThreshold)

	vestAssigned, n := vestMatcher.Match(groups.Persons, groups.Vests)
	unmatched += n
	for i, detIndex := range vestAssigned {
		if detIndex >= 0 {
			groups.Persons[i].Record.Vest = StatusCompliant
		}
	}

	// Маска: модель выдает отдельный класс нарушения (nomask). Требование
	// оценивается только при наличии в кадре таких детекций: если модель не
	// зафиксировала ни одного нарушения, категория считается выполненной.
	// При наличии детекций nomask действует политика по умолчанию: нарушение
	// у всех, сопоставленная детекция явно подтверждает нарушение конкретного
	// человека (назначение сохраняется ради будущей обработки положительного
	// класса маски)
	if len(groups.MaskViolations) == 0 {
		for _, person := range groups.Persons {
			person.Record.Mask = StatusCompliant
		}
	} else {
		maskMatcher := NewMatcher(func(item, person models.Box) float64 {
			return p.geom.ContainmentFraction(item, p.geom.FaceRegion(person, p.cfg.FaceFraction, p.cfg.FaceCenterFraction))
		}, p.cfg.MaskThreshold)

		maskAssigned, n := maskMatcher.Match(groups.Persons, groups.MaskViolations)
		unmatched += n
		for i, detIndex := range maskAssigned {
			if detIndex >= 0 {
				groups.Persons[i].Record.Mask = StatusViolation
			}
		}
	}

	return &Result{
		Persons: p.verdicts(groups.Persons),
		Summary: p.aggregate(groups, unmatched),
	}
}

// verdicts формирует итоговые результаты по каждому человеку:
// статусы категорий, цвет аннотации и процент выполнения требований
func (p *Pipeline) verdicts(persons []*Person) []models.PersonResult {
	results := make([]models.PersonResult, 0, len(persons))

	for _, person := range persons {
		compliant := 0
		if person.Record.Helmet == StatusCompliant {
			compliant++
		}
		if person.Record.Vest == StatusCompliant {
			compliant++
		}
		if person.Record.Mask == StatusCompliant {
			compliant++
		}

		color := ColorRed
		if compliant == 3 {
			color = ColorGreen
		}

		results = append(results, models.PersonResult{
			PersonID:   person.ID,
			Box:        person.Box,
			Helmet:     string(person.Record.Helmet),
			Vest:       string(person.Record.Vest),
			Mask:       string(person.Record.Mask),
			Color:      color,
			Confidence: compliant * 100 / 3,
		})
	}

	return results
}

// aggregate сводит записи о соответствии в итоговую статистику по изображению.
// Чистая свертка: записи людей только читаются
func (p *Pipeline) aggregate(groups *Groups, unmatched int) models.ComplianceSummary {
	total := len(groups.Persons)

	var helmetYes, vestYes, maskYes int
	for _, person := range groups.Persons {
		if person.Record.Helmet == StatusCompliant {
			helmetYes++
		}
		if person.Record.Vest == StatusCompliant {
			vestYes++
		}
		if person.Record.Mask == StatusCompliant {
			maskYes++
		}
	}

	score := 0
	if total > 0 {
		score = int(float64(helmetYes+vestYes+maskYes) / float64(3*total) * 100)
	}

	risk, recommendation := riskAssessment(score)

	return models.ComplianceSummary{
		TotalPersons:      total,
		Helmet:            models.CategoryCount{Wearing: helmetYes, NotWearing: total - helmetYes},
		Vest:              models.CategoryCount{Wearing: vestYes, NotWearing: total - vestYes},
		Mask:              models.CategoryCount{Wearing: maskYes, NotWearing: total - maskYes},
		ComplianceScore:   score,
		RiskLevel:         risk,
		Recommendation:    recommendation,
		IgnoredLabels:     groups.IgnoredLabels,
		DroppedDetections: groups.Dropped,
		UnmatchedItems:    unmatched,
	}
}

// riskAssessment определяет уровень риска и рекомендацию по проценту соответствия
func riskAssessment(score int) (string, string) {
	switch {
	case score >= 85:
		return RiskLow, recommendationLow
	case score >= 60:
		return RiskMedium, recommendationMedium
	default:
		return RiskHigh, recommendationHigh
	}
}
