package geometry

import (
	"testing"

	"github.com/GauravPandit27/construction-saftey/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestIoU(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name     string
		a, b     models.Box
		expected float64
	}{
		{
			name:     "идентичные рамки",
			a:        models.Box{X1: 0, Y1: 0, X2: 10, Y2: 10},
			b:        models.Box{X1: 0, Y1: 0, X2: 10, Y2: 10},
			expected: 1.0,
		},
		{
			name:     "непересекающиеся рамки",
			a:        models.Box{X1: 0, Y1: 0, X2: 10, Y2: 10},
			b:        models.Box{X1: 20, Y1: 20, X2: 30, Y2: 30},
			expected: 0,
		},
		{
			name:     "частичное пересечение",
			a:        models.Box{X1: 0, Y1: 0, X2: 10, Y2: 10},
			b:        models.Box{X1: 5, Y1: 0, X2: 15, Y2: 10},
			expected: 50.0 / 150.0,
		},
		{
			name:     "касание без пересечения",
			a:        models.Box{X1: 0, Y1: 0, X2: 10, Y2: 10},
			b:        models.Box{X1: 10, Y1: 0, X2: 20, Y2: 10},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, calc.IoU(tt.a, tt.b), 1e-9)
			// IoU симметричен
			assert.InDelta(t, tt.expected, calc.IoU(tt.b, tt.a), 1e-9)
		})
	}
}

func TestContainmentFraction(t *testing.T) {
	calc := NewCalculator()

	outer := models.Box{X1: 0, Y1: 0, X2: 100, Y2: 100}

	t.Run("полностью внутри", func(t *testing.T) {
		inner := models.Box{X1: 10, Y1: 10, X2: 50, Y2: 50}
		assert.InDelta(t, 1.0, calc.ContainmentFraction(inner, outer), 1e-9)
	})

	t.Run("наполовину внутри", func(t *testing.T) {
		inner := models.Box{X1: 50, Y1: 0, X2: 150, Y2: 100}
		assert.InDelta(t, 0.5, calc.ContainmentFraction(inner, outer), 1e-9)
	})

	t.Run("полностью снаружи", func(t *testing.T) {
		inner := models.Box{X1: 200, Y1: 200, X2: 250, Y2: 250}
		assert.InDelta(t, 0, calc.ContainmentFraction(inner, outer), 1e-9)
	})

	t.Run("вырожденная внутренняя рамка", func(t *testing.T) {
		inner := models.Box{X1: 10, Y1: 10, X2: 10, Y2: 50}
		assert.InDelta(t, 0, calc.ContainmentFraction(inner, outer), 1e-9)
	})
}

func TestHeadRegion(t *testing.T) {
	calc := NewCalculator()

	person := models.Box{X1: 0, Y1: 0, X2: 100, Y2: 200}
	head := calc.HeadRegion(person, 0.35)

	// Верхние 35% высоты на всю ширину рамки
	assert.Equal(t, models.Box{X1: 0, Y1: 0, X2: 100, Y2: 70}, head)
}

func TestFaceRegion(t *testing.T) {
	calc := NewCalculator()

	person := models.Box{X1: 0, Y1: 0, X2: 100, Y2: 200}
	face := calc.FaceRegion(person, 0.20, 0.6)

	// Верхние 20% высоты, 60% ширины по центру
	assert.Equal(t, models.Box{X1: 20, Y1: 0, X2: 80, Y2: 40}, face)
}

func TestIsValid(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name     string
		box      models.Box
		imgW     int
		imgH     int
		expected bool
	}{
		{"корректная рамка", models.Box{X1: 0, Y1: 0, X2: 10, Y2: 10}, 100, 100, true},
		{"нулевая ширина", models.Box{X1: 10, Y1: 0, X2: 10, Y2: 10}, 100, 100, false},
		{"перевернутая высота", models.Box{X1: 0, Y1: 20, X2: 10, Y2: 10}, 100, 100, false},
		{"отрицательная координата", models.Box{X1: -5, Y1: 0, X2: 10, Y2: 10}, 100, 100, false},
		{"выход за правую границу", models.Box{X1: 0, Y1: 0, X2: 110, Y2: 10}, 100, 100, false},
		{"выход за нижнюю границу", models.Box{X1: 0, Y1: 0, X2: 10, Y2: 110}, 100, 100, false},
		{"границы изображения неизвестны", models.Box{X1: 0, Y1: 0, X2: 5000, Y2: 5000}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.IsValid(tt.box, tt.imgW, tt.imgH))
		})
	}
}
