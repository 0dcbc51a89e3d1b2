package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/GauravPandit27/construction-saftey/internal/compliance"
	"github.com/GauravPandit27/construction-saftey/pkg/models"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// Цвета аннотаций
var (
	colorGreen = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colorRed   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Annotator рисует результаты анализа СИЗ поверх исходного изображения
type Annotator struct {
	logger        *logrus.Logger
	lineThickness int
	fontScale     float64
}

// NewAnnotator создает новый Annotator с параметрами отрисовки по умолчанию
func NewAnnotator(logger *logrus.Logger) *Annotator {
	return &Annotator{
		logger:        logger,
		lineThickness: 2,
		fontScale:     0.7,
	}
}

// Annotate декодирует изображение, рисует рамки и подписи для каждого человека
// и возвращает аннотированное изображение в формате JPEG
func (a *Annotator) Annotate(imageData []byte, persons []models.PersonResult) ([]byte, error) {
	img, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования изображения: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("не удалось декодировать изображение: пустая матрица")
	}

	for _, person := range persons {
		clr := colorRed
		status := "UNSAFE"
		if person.Color == compliance.ColorGreen {
			clr = colorGreen
			status = "SAFE"
		}

		rect := image.Rect(person.Box.X1, person.Box.Y1, person.Box.X2, person.Box.Y2)
		gocv.Rectangle(&img, rect, clr, a.lineThickness)

		label := fmt.Sprintf("%s | %d%%", status, person.Confidence)
		labelPos := image.Pt(person.Box.X1, person.Box.Y1-10)
		gocv.PutText(&img, label, labelPos, gocv.FontHersheySimplex, a.fontScale, clr, 2)
	}

	buf, err := gocv.IMEncode(".jpg", img)
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования аннотированного изображения: %w", err)
	}
	defer buf.Close()

	// Копируем данные: буфер освобождается вместе с нативной памятью
	encoded := make([]byte, buf.Len())
	copy(encoded, buf.GetBytes())

	a.logger.Debugf("Аннотировано %d человек, размер изображения %d байт", len(persons), len(encoded))
	return encoded, nil
}
