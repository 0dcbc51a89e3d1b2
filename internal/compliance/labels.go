package compliance

import "strings"

// Канонические имена классов модели детекции
const (
	LabelPerson = "person"
	LabelHelmet = "hardhat"
	LabelVest   = "safetyvest"
	LabelMask   = "mask"
	LabelNoMask = "nomask"
)

// Status статус соответствия по одной категории СИЗ
type Status string

const (
	// StatusCompliant требование выполнено
	StatusCompliant Status = "compliant"
	// StatusViolation требование нарушено
	StatusViolation Status = "violation"
)

// DefaultStatus политика по умолчанию: отсутствие детекции СИЗ считается нарушением,
// состояние "неизвестно" наружу не выдается
const DefaultStatus = StatusViolation

// Цвета аннотации человека на изображении
const (
	ColorGreen = "green"
	ColorRed   = "red"
)

// Уровни риска площадки
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// NormalizeLabel приводит имя класса модели к каноническому виду:
// нижний регистр, без дефисов и пробелов
func NormalizeLabel(label string) string {
	normalized := strings.ToLower(label)
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, " ", "")

	return normalized
}
