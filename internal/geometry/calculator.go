package geometry

import (
	"github.com/GauravPandit27/construction-saftey/pkg/models"
)

// Calculator для геометрических вычислений над ограничивающими рамками
type Calculator struct{}

// NewCalculator создает новый калькулятор
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Area вычисляет площадь рамки в пикселях
func (c *Calculator) Area(b models.Box) float64 {
	w := b.X2 - b.X1
	h := b.Y2 - b.Y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return float64(w) * float64(h)
}

// intersectionArea вычисляет площадь пересечения двух рамок
func (c *Calculator) intersectionArea(a, b models.Box) float64 {
	x1 := max(a.X1, b.X1)
	y1 := max(a.Y1, b.Y1)
	x2 := min(a.X2, b.X2)
	y2 := min(a.Y2, b.Y2)

	if x2 <= x1 || y2 <= y1 {
		return 0
	}

	return float64(x2-x1) * float64(y2-y1)
}

// IoU вычисляет отношение площади пересечения к площади объединения двух рамок.
// Возвращает 0, если рамки не пересекаются
func (c *Calculator) IoU(a, b models.Box) float64 {
	inter := c.intersectionArea(a, b)
	union := c.Area(a) + c.Area(b) - inter

	if union <= 0 {
		return 0
	}

	return inter / union
}

// ContainmentFraction вычисляет долю площади рамки inner, лежащую внутри рамки outer.
// Используется для касок и масок: они малы относительно рамки человека,
// поэтому IoU для них всегда был бы низким даже при корректном совпадении
func (c *Calculator) ContainmentFraction(inner, outer models.Box) float64 {
	areaInner := c.Area(inner)
	if areaInner <= 0 {
		return 0
	}

	return c.intersectionArea(inner, outer) / areaInner
}

// HeadRegion возвращает область головы: верхняя часть рамки человека
// высотой frac от полной высоты, на всю ширину рамки
func (c *Calculator) HeadRegion(person models.Box, frac float64) models.Box {
	height := person.Y2 - person.Y1

	return models.Box{
		X1: person.X1,
		Y1: person.Y1,
		X2: person.X2,
		Y2: person.Y1 + int(frac*float64(height)),
	}
}

// FaceRegion возвращает область лица: верхняя часть рамки человека высотой frac
// от полной высоты, шириной centerFrac от ширины рамки, центрированная по горизонтали
func (c *Calculator) FaceRegion(person models.Box, frac, centerFrac float64) models.Box {
	height := person.Y2 - person.Y1
	width := person.X2 - person.X1

	faceWidth := int(centerFrac * float64(width))
	centerX := person.X1 + width/2

	return models.Box{
		X1: centerX - faceWidth/2,
		Y1: person.Y1,
		X2: centerX + faceWidth/2,
		Y2: person.Y1 + int(frac*float64(height)),
	}
}

// IsValid проверяет корректность рамки. Границы изображения учитываются,
// только если они известны (imgWidth/imgHeight > 0)
func (c *Calculator) IsValid(b models.Box, imgWidth, imgHeight int) bool {
	if b.X1 >= b.X2 || b.Y1 >= b.Y2 {
		return false
	}

	if b.X1 < 0 || b.Y1 < 0 {
		return false
	}

	if imgWidth > 0 && b.X2 > imgWidth {
		return false
	}

	if imgHeight > 0 && b.Y2 > imgHeight {
		return false
	}

	return true
}
