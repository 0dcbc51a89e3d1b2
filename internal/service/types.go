package service

import (
	"time"

	"github.com/GauravPandit27/construction-saftey/pkg/models"
)

// InspectionResponse ответ с информацией об инспекции
type InspectionResponse struct {
	ID            string                   `json:"id"`
	ImageFilename string                   `json:"image_filename,omitempty"`
	AnnotatedURL  string                   `json:"annotated_url,omitempty"`
	Summary       models.ComplianceSummary `json:"summary"`
	Persons       []models.PersonResult    `json:"persons"`
	CreatedAt     time.Time                `json:"created_at"`
}

// ListInspectionsResponse ответ со списком инспекций
type ListInspectionsResponse struct {
	Inspections []InspectionResponse `json:"inspections"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	Size        int                  `json:"size"`
}
