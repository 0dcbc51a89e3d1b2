package compliance

import (
	"io"
	"testing"

	"github.com/GauravPandit27/construction-saftey/internal/geometry"
	"github.com/GauravPandit27/construction-saftey/pkg/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger возвращает логгер без вывода для тестов
func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// det сокращение для создания детекции
func det(label string, x1, y1, x2, y2 int) models.Detection {
	return models.Detection{
		Box:        models.Box{X1: x1, Y1: y1, X2: x2, Y2: y2},
		Label:      label,
		Confidence: 0.9,
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Person", "person"},
		{"Hard-Hat", "hardhat"},
		{"Safety Vest", "safetyvest"},
		{"NO-Mask", "nomask"},
		{"hardhat", "hardhat"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeLabel(tt.input))
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("конфигурация по умолчанию корректна", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("отрицательный порог", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.VestThreshold = -0.1
		assert.Error(t, cfg.Validate())
	})

	t.Run("порог больше единицы", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.HelmetThreshold = 1.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("нулевая доля области головы", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.HeadFraction = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestPartitionAssignsStablePersonIDs(t *testing.T) {
	part := NewPartitioner(geometry.NewCalculator(), testLogger())

	// Люди перечислены в произвольном порядке
	detections := []models.Detection{
		det("person", 50, 10, 150, 210),
		det("person", 10, 10, 110, 210),
		det("person", 5, 0, 105, 200),
	}

	groups := part.Partition(detections, 0, 0)

	require.Len(t, groups.Persons, 3)
	// Нумерация по верхнему левому углу: сначала Y1, затем X1
	assert.Equal(t, models.Box{X1: 5, Y1: 0, X2: 105, Y2: 200}, groups.Persons[0].Box)
	assert.Equal(t, models.Box{X1: 10, Y1: 10, X2: 110, Y2: 210}, groups.Persons[1].Box)
	assert.Equal(t, models.Box{X1: 50, Y1: 10, X2: 150, Y2: 210}, groups.Persons[2].Box)

	for i, person := range groups.Persons {
		assert.Equal(t, i, person.ID)
		// Политика по умолчанию: нарушение по всем категориям
		assert.Equal(t, DefaultStatus, person.Record.Helmet)
		assert.Equal(t, DefaultStatus, person.Record.Vest)
		assert.Equal(t, DefaultStatus, person.Record.Mask)
	}
}

func TestPartitionDropsMalformedAndCountsIgnored(t *testing.T) {
	part := NewPartitioner(geometry.NewCalculator(), testLogger())

	detections := []models.Detection{
		det("person", 0, 0, 100, 200),
		det("hardhat", 60, 60, 10, 10), // перевернутая рамка
		det("forklift", 0, 0, 50, 50),  // неизвестный класс
		det("mask", 30, 5, 50, 25),     // положительный класс маски не участвует
		det("safetyvest", 0, 80, 100, 200),
	}

	groups := part.Partition(detections, 0, 0)

	assert.Len(t, groups.Persons, 1)
	assert.Len(t, groups.Helmets, 0)
	assert.Len(t, groups.Vests, 1)
	assert.Len(t, groups.MaskViolations, 0)
	assert.Equal(t, 1, groups.Dropped)
	assert.Equal(t, 1, groups.IgnoredLabels)
}

func TestPartitionRejectsBoxOutsideImageBounds(t *testing.T) {
	part := NewPartitioner(geometry.NewCalculator(), testLogger())

	detections := []models.Detection{
		det("person", 0, 0, 100, 200),
		det("person", 500, 0, 700, 200), // за границей изображения
	}

	groups := part.Partition(detections, 640, 480)

	assert.Len(t, groups.Persons, 1)
	assert.Equal(t, 1, groups.Dropped)
}

func TestMatcherDisplacement(t *testing.T) {
	geom := geometry.NewCalculator()
	cfg := DefaultConfig()

	matcher := NewMatcher(func(item, person models.Box) float64 {
		return geom.ContainmentFraction(item, geom.HeadRegion(person, cfg.HeadFraction))
	}, cfg.HelmetThreshold)

	person := &Person{ID: 0, Box: models.Box{X1: 0, Y1: 0, X2: 100, Y2: 200}, Record: newComplianceRecord()}

	low := det("hardhat", 0, 28, 100, 98)  // доля 0.6 в области головы
	high := det("hardhat", 10, 10, 60, 60) // полностью внутри, доля 1.0

	t.Run("поздняя детекция с большей оценкой вытесняет раннюю", func(t *testing.T) {
		assigned, unmatched := matcher.Match([]*Person{person}, []models.Detection{low, high})
		assert.Equal(t, []int{1}, assigned)
		assert.Equal(t, 1, unmatched)
	})

	t.Run("поздняя детекция с меньшей оценкой отбрасывается", func(t *testing.T) {
		assigned, unmatched := matcher.Match([]*Person{person}, []models.Detection{high, low})
		assert.Equal(t, []int{0}, assigned)
		assert.Equal(t, 1, unmatched)
	})
}

func TestHelmetContainmentBoundary(t *testing.T) {
	pipeline := NewPipeline(DefaultConfig(), testLogger())

	person := det("person", 0, 0, 100, 200)

	t.Run("ровно на пороге считается совпадением", func(t *testing.T) {
		// Область головы (0,0,100,70): доля каски ровно 3500/7000 = 0.5
		result := pipeline.Analyze([]models.Detection{person, det("hardhat", 0, 35, 100, 105)}, 0, 0)
		assert.Equal(t, 1, result.Summary.Helmet.Wearing)
	})

	t.Run("чуть ниже порога не считается", func(t *testing.T) {
		result := pipeline.Analyze([]models.Detection{person, det("hardhat", 0, 36, 100, 106)}, 0, 0)
		assert.Equal(t, 0, result.Summary.Helmet.Wearing)
		assert.Equal(t, 1, result.Summary.UnmatchedItems)
	})
}

func TestVestIoUBoundary(t *testing.T) {
	pipeline := NewPipeline(DefaultConfig(), testLogger())

	person := det("person", 0, 0, 100, 200)

	t.Run("ровно на пороге считается совпадением", func(t *testing.T) {
		// IoU = 6000/20000 = 0.3
		result := pipeline.Analyze([]models.Detection{person, det("safetyvest", 0, 140, 100, 200)}, 0, 0)
		assert.Equal(t, 1, result.Summary.Vest.Wearing)
	})

	t.Run("чуть ниже порога не считается", func(t *testing.T) {
		result := pipeline.Analyze([]models.Detection{person, det("safetyvest", 0, 141, 100, 200)}, 0, 0)
		assert.Equal(t, 0, result.Summary.Vest.Wearing)
	})
}

func TestScenarioFullCompliance(t *testing.T) {
	pipeline := NewPipeline(DefaultConfig(), testLogger())

	detections := []models.Detection{
		det("person", 0, 0, 100, 200),
		det("hardhat", 30, 10, 70, 50),     // полностью в области головы
		det("safetyvest", 0, 80, 100, 200), // IoU 0.6 с рамкой человека
	}

	result := pipeline.Analyze(detections, 0, 0)

	assert.Equal(t, 1, result.Summary.TotalPersons)
	assert.Equal(t, models.CategoryCount{Wearing: 1, NotWearing: 0}, result.Summary.Helmet)
	assert.Equal(t, models.CategoryCount{Wearing: 1, NotWearing: 0}, result.Summary.Vest)
	assert.Equal(t, models.CategoryCount{Wearing: 1, NotWearing: 0}, result.Summary.Mask)
	assert.Equal(t, 100, result.Summary.ComplianceScore)
	assert.Equal(t, RiskLow, result.Summary.RiskLevel)

	require.Len(t, result.Persons, 1)
	assert.Equal(t, ColorGreen, result.Persons[0].Color)
	assert.Equal(t, 100, result.Persons[0].Confidence)
}

func TestScenarioMixedViolations(t *testing.T) {
	pipeline := NewPipeline(DefaultConfig(), testLogger())

	detections := []models.Detection{
		det("person", 0, 0, 100, 200),        // person_id 0
		det("person", 150, 0, 250, 200),      // person_id 1
		det("hardhat", 10, 10, 60, 60),       // только голова первого
		det("safetyvest", 150, 60, 250, 130), // IoU 0.35 со вторым
		det("nomask", 30, 5, 50, 25),         // лицо первого
	}

	result := pipeline.Analyze(detections, 0, 0)

	assert.Equal(t, 2, result.Summary.TotalPersons)
	assert.Equal(t, models.CategoryCount{Wearing: 1, NotWearing: 1}, result.Summary.Helmet)
	assert.Equal(t, models.CategoryCount{Wearing: 1, NotWearing: 1}, result.Summary.Vest)
	assert.Equal(t, models.CategoryCount{Wearing: 0, NotWearing: 2}, result.Summary.Mask)
	assert.Equal(t, RiskHigh, result.Summary.RiskLevel)

	require.Len(t, result.Persons, 2)

	// Первый: каска есть, но есть нарушение по маске
	first := result.Persons[0]
	assert.Equal(t, string(StatusCompliant), first.Helmet)
	assert.Equal(t, string(StatusViolation), first.Mask)
	assert.Equal(t, ColorRed, first.Color)

	// Второй: только жилет, маска в статусе нарушения по умолчанию
	second := result.Persons[1]
	assert.Equal(t, string(StatusViolation), second.Helmet)
	assert.Equal(t, string(StatusCompliant), second.Vest)
	assert.Equal(t, string(StatusViolation), second.Mask)
	assert.Equal(t, ColorRed, second.Color)
}

func TestScenarioCompetingHelmets(t *testing.T) {
	pipeline := NewPipeline(DefaultConfig(), testLogger())

	detections := []models.Detection{
		det("person", 0, 0, 100, 200),
		det("hardhat", 0, 28, 100, 98), // доля 0.6
		det("hardhat", 10, 10, 60, 60), // доля 1.0 — побеждает
	}

	result := pipeline.Analyze(detections, 0, 0)

	// Человек получает ровно одну каску, проигравшая остается без назначения
	assert.Equal(t, 1, result.Summary.Helmet.Wearing)
	assert.Equal(t, 1, result.Summary.UnmatchedItems)
	assert.Equal(t, string(StatusCompliant), result.Persons[0].Helmet)
}

func TestTieBreakLowestPersonID(t *testing.T) {
	pipeline := NewPipeline(DefaultConfig(), testLogger())

	// Каска полностью лежит в областях головы обоих людей: оценки равны
	detections := []models.Detection{
		det("person", 0, 0, 100, 200),
		det("person", 20, 0, 120, 200),
		det("hardhat", 30, 10, 90, 60),
	}

	result := pipeline.Analyze(detections, 0, 0)

	// Одна детекция не может достаться двум людям
	assert.Equal(t, 1, result.Summary.Helmet.Wearing)
	assert.Equal(t, string(StatusCompliant), result.Persons[0].Helmet)
	assert.Equal(t, string(StatusViolation), result.Persons[1].Helmet)
}

func TestScenarioZeroDetections(t *testing.T) {
	pipeline := NewPipeline(DefaultConfig(), testLogger())

	result := pipeline.Analyze(nil, 0, 0)

	assert.Equal(t, 0, result.Summary.TotalPersons)
	assert.Equal(t, models.CategoryCount{}, result.Summary.Helmet)
	assert.Equal(t, models.CategoryCount{}, result.Summary.Vest)
	assert.Equal(t, models.CategoryCount{}, result.Summary.Mask)
	assert.Equal(t, 0, result.Summary.ComplianceScore)
	assert.Equal(t, RiskHigh, result.Summary.RiskLevel)
	assert.Empty(t, result.Persons)
}

func TestUnmatchedMaskViolationStillViolation(t *testing.T) {
	pipeline := NewPipeline(DefaultConfig(), testLogger())

	// Детекция nomask далеко от лица: не сопоставляется, но ее наличие
	// включает оценку категории, и человек остается в статусе нарушения
	detections := []models.Detection{
		det("person", 0, 0, 100, 200),
		det("nomask", 500, 500, 520, 520),
	}

	result := pipeline.Analyze(detections, 0, 0)

	assert.Equal(t, models.CategoryCount{Wearing: 0, NotWearing: 1}, result.Summary.Mask)
	assert.Equal(t, 1, result.Summary.UnmatchedItems)
}

func TestDeterminism(t *testing.T) {
	pipeline := NewPipeline(DefaultConfig(), testLogger())

	detections := []models.Detection{
		det("person", 150, 0, 250, 200),
		det("person", 0, 0, 100, 200),
		det("hardhat", 10, 10, 60, 60),
		det("hardhat", 0, 28, 100, 98),
		det("safetyvest", 150, 60, 250, 130),
		det("nomask", 30, 5, 50, 25),
		det("forklift", 300, 300, 350, 350),
	}

	first := pipeline.Analyze(detections, 0, 0)
	second := pipeline.Analyze(detections, 0, 0)

	// Повторный запуск на том же входе дает идентичный результат
	require.Equal(t, first.Summary, second.Summary)
	require.Equal(t, first.Persons, second.Persons)
}

func TestCountInvariant(t *testing.T) {
	pipeline := NewPipeline(DefaultConfig(), testLogger())

	detections := []models.Detection{
		det("person", 0, 0, 100, 200),
		det("person", 150, 0, 250, 200),
		det("person", 300, 0, 400, 200),
		det("hardhat", 10, 10, 60, 60),
		det("safetyvest", 150, 60, 250, 130),
		det("nomask", 30, 5, 50, 25),
	}

	result := pipeline.Analyze(detections, 0, 0)

	total := result.Summary.TotalPersons
	for _, count := range []models.CategoryCount{
		result.Summary.Helmet,
		result.Summary.Vest,
		result.Summary.Mask,
	} {
		assert.Equal(t, total, count.Wearing+count.NotWearing)
	}
}
