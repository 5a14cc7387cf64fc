package models

import "gorm.io/datatypes"

const DefaultJobColor = "from-blue-500 to-blue-600"

type Job struct {
	BaseModel
	Title        string                      `gorm:"size:100;not null" json:"title" validate:"required,max=100"`
	Department   string                      `gorm:"size:100;not null;index" json:"department" validate:"required"`
	Type         JobType                     `gorm:"type:varchar(20);not null" json:"type" validate:"required,is-job-type"`
	Location     string                      `gorm:"not null" json:"location" validate:"required"`
	Experience   string                      `gorm:"not null" json:"experience" validate:"required"`
	Salary       string                      `gorm:"not null" json:"salary" validate:"required"`
	Description  string                      `gorm:"type:text;not null" json:"description" validate:"required"`
	Requirements datatypes.JSONSlice[string] `json:"requirements" validate:"min=1,dive,required"`
	Status       JobStatus                   `gorm:"type:varchar(20);not null;index" json:"status" validate:"required,is-job-status"`
	Color        string                      `gorm:"size:100" json:"color"`
	Applications int                         `gorm:"not null" json:"applications"`
	PostedBy     *string                     `gorm:"type:uuid" json:"postedBy,omitempty"`
}

func (j *Job) IsActive() bool {
	return j.Status == JobStatusActive
}
