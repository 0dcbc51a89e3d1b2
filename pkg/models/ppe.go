package models

// Box представляет ограничивающую рамку в пиксельных координатах исходного изображения
type Box struct {
	X1 int `json:"x1"` // Левый край
	Y1 int `json:"y1"` // Верхний край
	X2 int `json:"x2"` // Правый край
	Y2 int `json:"y2"` // Нижний край
}

// Detection представляет сырую детекцию от нейронной сети
type Detection struct {
	Box        Box     `json:"box"`        // Рамка объекта
	Label      string  `json:"label"`      // Имя класса модели (person, hardhat, safetyvest, nomask и т.д.)
	Confidence float64 `json:"confidence"` // Уверенность модели в диапазоне [0, 1]
}

// AnalyzeRequest представляет запрос на анализ средств индивидуальной защиты
type AnalyzeRequest struct {
	ImageData     []byte `json:"-"`              // Данные изображения (не сериализуем в JSON)
	ImageFilename string `json:"image_filename"` // Имя файла изображения
}

// CategoryCount пара счетчиков "носит/не носит" для одной категории СИЗ
type CategoryCount struct {
	Wearing    int `json:"wearing"`     // Количество людей с надетым средством защиты
	NotWearing int `json:"not_wearing"` // Количество людей без средства защиты
}

// ComplianceSummary итоговая статистика соответствия требованиям СИЗ по изображению
type ComplianceSummary struct {
	TotalPersons      int           `json:"total_persons"`      // Общее количество людей
	Helmet            CategoryCount `json:"helmet"`             // Статистика по каскам
	Vest              CategoryCount `json:"vest"`               // Статистика по жилетам
	Mask              CategoryCount `json:"mask"`               // Статистика по маскам
	ComplianceScore   int           `json:"compliance_score"`   // Процент соответствия площадки [0, 100]
	RiskLevel         string        `json:"risk_level"`         // Уровень риска (LOW/MEDIUM/HIGH)
	Recommendation    string        `json:"recommendation"`     // Рекомендация по итогам анализа
	IgnoredLabels     int           `json:"ignored_labels"`     // Количество детекций с неизвестными классами
	DroppedDetections int           `json:"dropped_detections"` // Количество отброшенных некорректных детекций
	UnmatchedItems    int           `json:"unmatched_items"`    // Количество СИЗ, не сопоставленных ни с одним человеком
}

// PersonResult результат проверки одного человека
type PersonResult struct {
	PersonID   int    `json:"person_id"`  // Стабильный идентификатор человека в пределах изображения
	Box        Box    `json:"box"`        // Рамка человека
	Helmet     string `json:"helmet"`     // Статус по каске (compliant/violation)
	Vest       string `json:"vest"`       // Статус по жилету
	Mask       string `json:"mask"`       // Статус по маске
	Color      string `json:"color"`      // Цвет аннотации (green/red)
	Confidence int    `json:"confidence"` // Процент выполнения требований СИЗ [0, 100]
}

// AnalyzeResponse представляет ответ анализа СИЗ
type AnalyzeResponse struct {
	Status       string            `json:"status"`                  // Статус выполнения (success/error)
	Message      string            `json:"message"`                 // Сообщение о результате
	InspectionID string            `json:"inspection_id,omitempty"` // ID сохраненной инспекции
	Summary      ComplianceSummary `json:"summary"`                 // Итоговая статистика
	Persons      []PersonResult    `json:"persons"`                 // Результаты по каждому человеку
	AnnotatedURL string            `json:"annotated_url,omitempty"` // Путь к аннотированному изображению
}

// DetectorAPIResponse определяет структуру ответа от Python FastAPI сервиса детекции
type DetectorAPIResponse struct {
	Status      string      `json:"status"`       // Статус выполнения
	Message     string      `json:"message"`      // Сообщение
	Detections  []Detection `json:"detections"`   // Список детекций
	ImageWidth  int         `json:"image_width"`  // Ширина исходного изображения в пикселях
	ImageHeight int         `json:"image_height"` // Высота исходного изображения в пикселях
}

// HealthResponse представляет ответ проверки здоровья сервиса
type HealthResponse struct {
	Status      string `json:"status"`       // Статус сервиса (healthy/unhealthy)
	ModelLoaded bool   `json:"model_loaded"` // Загружена ли модель нейронной сети
	Version     string `json:"version"`      // Версия сервиса
}
