package dto

import (
	"triveni_backend/internal/models"
	"triveni_backend/internal/repositories"
)

// JobRequest - создание вакансии. Статус по умолчанию draft.
type JobRequest struct {
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Type         string   `json:"type"`
	Location     string   `json:"location"`
	Experience   string   `json:"experience"`
	Salary       string   `json:"salary"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Status       string   `json:"status"`
	Color        string   `json:"color"`
}

// UpdateJobRequest - частичное обновление: nil-поля не меняются.
type UpdateJobRequest struct {
	Title        *string  `json:"title"`
	Department   *string  `json:"department"`
	Type         *string  `json:"type"`
	Location     *string  `json:"location"`
	Experience   *string  `json:"experience"`
	Salary       *string  `json:"salary"`
	Description  *string  `json:"description"`
	Requirements []string `json:"requirements"`
	Status       *string  `json:"status"`
	Color        *string  `json:"color"`
}

type JobStatusRequest struct {
	Status string `json:"status" validate:"required,is-job-status"`
}

// JobDetail - вакансия для админки с фактическим числом откликов.
type JobDetail struct {
	models.Job
	ApplicationsCount int64 `json:"applicationsCount"`
}

type JobStats struct {
	Total    int64                        `json:"total"`
	Active   int64                        `json:"active"`
	ByStatus []repositories.JobStatusStat `json:"byStatus"`
}
