package compliance

import "fmt"

// MalformedDetectionError ошибка некорректной детекции: вырожденная рамка
// или рамка за пределами изображения. Такая детекция отбрасывается,
// анализ остальных детекций продолжается
type MalformedDetectionError struct {
	Index  int    // Позиция детекции во входном списке
	Label  string // Нормализованное имя класса
	Reason string // Причина отбраковки
}

// Error возвращает текстовое описание ошибки
func (e *MalformedDetectionError) Error() string {
	return fmt.Sprintf("некорректная детекция #%d (%s): %s", e.Index, e.Label, e.Reason)
}
