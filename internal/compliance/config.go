package compliance

import "fmt"

// Config пороги сопоставления и доли областей. Значения только читаются,
// поэтому один экземпляр можно безопасно разделять между параллельными запросами
type Config struct {
	HeadFraction       float64 // Доля высоты рамки человека, занимаемая областью головы
	FaceFraction       float64 // Доля высоты рамки человека, занимаемая областью лица
	FaceCenterFraction float64 // Доля ширины рамки человека, занимаемая областью лица
	HelmetThreshold    float64 // Минимальная доля каски внутри области головы
	VestThreshold      float64 // Минимальный IoU жилета с рамкой человека
	MaskThreshold      float64 // Минимальная доля маски внутри области лица
}

// DefaultConfig возвращает конфигурацию сопоставления по умолчанию
func DefaultConfig() Config {
	return Config{
		HeadFraction:       0.35,
		FaceFraction:       0.20,
		FaceCenterFraction: 0.6,
		HelmetThreshold:    0.5,
		VestThreshold:      0.3,
		MaskThreshold:      0.4,
	}
}

// Validate проверяет корректность порогов и долей. Вызывается один раз при старте
// сервиса: некорректная конфигурация это фатальная ошибка, а не ошибка запроса
func (c Config) Validate() error {
	fractions := map[string]float64{
		"HEAD_REGION_FRACTION": c.HeadFraction,
		"FACE_REGION_FRACTION": c.FaceFraction,
		"FACE_CENTER_FRACTION": c.FaceCenterFraction,
	}

	for name, value := range fractions {
		if value <= 0 || value > 1 {
			return fmt.Errorf("%s должен быть в диапазоне (0, 1], получено %.3f", name, value)
		}
	}

	thresholds := map[string]float64{
		"HELMET_CONTAINMENT_THRESHOLD": c.HelmetThreshold,
		"VEST_IOU_THRESHOLD":           c.VestThreshold,
		"MASK_CONTAINMENT_THRESHOLD":   c.MaskThreshold,
	}

	for name, value := range thresholds {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s должен быть в диапазоне [0, 1], получено %.3f", name, value)
		}
	}

	return nil
}
