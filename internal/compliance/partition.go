package compliance

import (
	"sort"

	"github.com/GauravPandit27/construction-saftey/internal/geometry"
	"github.com/GauravPandit27/construction-saftey/pkg/models"

	"github.com/sirupsen/logrus"
)

// ComplianceRecord состояние одного человека по трем категориям СИЗ
type ComplianceRecord struct {
	Helmet Status
	Vest   Status
	Mask   Status
}

// newComplianceRecord создает запись с политикой по умолчанию "нет детекции — нарушение"
func newComplianceRecord() ComplianceRecord {
	return ComplianceRecord{
		Helmet: DefaultStatus,
		Vest:   DefaultStatus,
		Mask:   DefaultStatus,
	}
}

// Person человек с записью о соответствии требованиям СИЗ
type Person struct {
	ID     int        // Стабильный идентификатор, назначается один раз при разбиении
	Box    models.Box // Рамка человека
	Record ComplianceRecord
}

// Groups результат разбиения списка детекций по категориям.
// Порядок детекций внутри каждой группы совпадает с порядком во входном списке
type Groups struct {
	Persons        []*Person
	Helmets        []models.Detection
	Vests          []models.Detection
	MaskViolations []models.Detection
	IgnoredLabels  int // Количество детекций с классами вне известного набора
	Dropped        int // Количество отброшенных некорректных детекций
}

// Partitioner разбивает список детекций на типизированные группы
type Partitioner struct {
	geom   *geometry.Calculator
	logger *logrus.Logger
}

// NewPartitioner создает новый Partitioner
func NewPartitioner(geom *geometry.Calculator, logger *logrus.Logger) *Partitioner {
	return &Partitioner{
		geom:   geom,
		logger: logger,
	}
}

// Partition разбивает детекции по категориям и назначает людям стабильные
// идентификаторы. Люди нумеруются в порядке сортировки по верхнему левому углу
// рамки (сначала Y1, затем X1), чтобы все последующие разрешения ничьих
// были воспроизводимыми
func (p *Partitioner) Partition(detections []models.Detection, imgWidth, imgHeight int) *Groups {
	groups := &Groups{}

	for i, det := range detections {
		label := NormalizeLabel(det.Label)

		if !p.geom.IsValid(det.Box, imgWidth, imgHeight) {
			mde := &MalformedDetectionError{
				Index:  i,
				Label:  label,
				Reason: "вырожденная рамка или выход за границы изображения",
			}
			p.logger.Warnf("Отбрасываем детекцию: %v", mde)
			groups.Dropped++
			continue
		}

		switch label {
		case LabelPerson:
			groups.Persons = append(groups.Persons, &Person{
				Box:    det.Box,
				Record: newComplianceRecord(),
			})
		case LabelHelmet:
			groups.Helmets = append(groups.Helmets, det)
		case LabelVest:
			groups.Vests = append(groups.Vests, det)
		case LabelNoMask:
			groups.MaskViolations = append(groups.MaskViolations, det)
		case LabelMask:
			// Положительный класс маски распознается, но в сопоставлении не участвует:
			// отсутствие признака нарушения уже покрыто политикой по умолчанию
		default:
			p.logger.Debugf("Игнорируем детекцию #%d с неизвестным классом %q", i, det.Label)
			groups.IgnoredLabels++
		}
	}

	// Стабильная нумерация людей: сортируем по верхнему левому углу рамки
	sort.SliceStable(groups.Persons, func(i, j int) bool {
		a, b := groups.Persons[i].Box, groups.Persons[j].Box
		if a.Y1 != b.Y1 {
			return a.Y1 < b.Y1
		}
		return a.X1 < b.X1
	})

	for i := range groups.Persons {
		groups.Persons[i].ID = i
	}

	return groups
}
