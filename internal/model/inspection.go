package model

import (
	"time"

	"gorm.io/gorm"
)

// Inspection представляет результат анализа одного изображения в базе данных
type Inspection struct {
	ID            string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ImageFilename string `gorm:"type:varchar(255)" json:"image_filename"`
	ImagePath     string `gorm:"type:varchar(500)" json:"image_path"`
	AnnotatedPath string `gorm:"type:varchar(500)" json:"annotated_path"`

	// Итоговая статистика
	TotalPersons      int    `gorm:"not null;default:0" json:"total_persons"`
	HelmetWearing     int    `gorm:"not null;default:0" json:"helmet_wearing"`
	HelmetNotWearing  int    `gorm:"not null;default:0" json:"helmet_not_wearing"`
	VestWearing       int    `gorm:"not null;default:0" json:"vest_wearing"`
	VestNotWearing    int    `gorm:"not null;default:0" json:"vest_not_wearing"`
	MaskWearing       int    `gorm:"not null;default:0" json:"mask_wearing"`
	MaskNotWearing    int    `gorm:"not null;default:0" json:"mask_not_wearing"`
	ComplianceScore   int    `gorm:"not null;default:0" json:"compliance_score"`
	RiskLevel         string `gorm:"type:varchar(16)" json:"risk_level"`
	Recommendation    string `gorm:"type:text" json:"recommendation"`
	IgnoredLabels     int    `gorm:"not null;default:0" json:"ignored_labels"`
	DroppedDetections int    `gorm:"not null;default:0" json:"dropped_detections"`
	UnmatchedItems    int    `gorm:"not null;default:0" json:"unmatched_items"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Связь с записями о людях
	Persons []PersonRecord `gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE" json:"persons"`
}

// PersonRecord представляет запись о проверке одного человека в базе данных
type PersonRecord struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	InspectionID string `gorm:"type:varchar(36);not null;index" json:"inspection_id"`
	PersonID     int    `gorm:"not null" json:"person_id"`

	// Рамка человека в пиксельных координатах
	X1 int `gorm:"not null" json:"x1"`
	Y1 int `gorm:"not null" json:"y1"`
	X2 int `gorm:"not null" json:"x2"`
	Y2 int `gorm:"not null" json:"y2"`

	HelmetStatus string `gorm:"type:varchar(16);not null" json:"helmet_status"`
	VestStatus   string `gorm:"type:varchar(16);not null" json:"vest_status"`
	MaskStatus   string `gorm:"type:varchar(16);not null" json:"mask_status"`
	Color        string `gorm:"type:varchar(8);not null" json:"color"`
	Confidence   int    `gorm:"not null" json:"confidence"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Обратная связь с инспекцией
	Inspection Inspection `gorm:"foreignKey:InspectionID;references:ID" json:"-"`
}

// TableName указывает имя таблицы для Inspection
func (Inspection) TableName() string {
	return "inspections"
}

// TableName указывает имя таблицы для PersonRecord
func (PersonRecord) TableName() string {
	return "person_records"
}
