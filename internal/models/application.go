package models

import "gorm.io/datatypes"

// Resume описывает загруженный файл резюме. Path - путь внутри хранилища.
type Resume struct {
	Filename     string `gorm:"size:255" json:"filename,omitempty"`
	OriginalName string `gorm:"size:255" json:"originalName,omitempty"`
	Path         string `gorm:"size:500" json:"path,omitempty"`
	Size         int64  `json:"size,omitempty"`
	MimeType     string `gorm:"size:100" json:"mimeType,omitempty"`
}

type Application struct {
	BaseModel
	Name           string                      `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Email          string                      `gorm:"size:255;not null;index;uniqueIndex:idx_applications_email_job" json:"email" validate:"required,email"`
	Phone          string                      `gorm:"size:50;not null" json:"phone" validate:"required"`
	Position       string                      `gorm:"size:100;not null;index" json:"position" validate:"required"`
	JobID          string                      `gorm:"type:uuid;not null;index;uniqueIndex:idx_applications_email_job" json:"jobId" validate:"required"`
	Job            *Job                        `gorm:"foreignKey:JobID;constraint:OnDelete:RESTRICT" json:"job,omitempty" validate:"-"`
	Experience     string                      `gorm:"not null" json:"experience" validate:"required"`
	CurrentCompany string                      `json:"currentCompany,omitempty"`
	ExpectedSalary string                      `gorm:"not null" json:"expectedSalary" validate:"required"`
	NoticePeriod   string                      `gorm:"not null" json:"noticePeriod" validate:"required"`
	Resume         Resume                      `gorm:"embedded;embeddedPrefix:resume_" json:"resume"`
	CoverLetter    string                      `gorm:"type:text" json:"coverLetter,omitempty"`
	Skills         datatypes.JSONSlice[string] `json:"skills"`
	Education      string                      `json:"education,omitempty"`
	Status         ApplicationStatus           `gorm:"type:varchar(20);not null;index" json:"status" validate:"required,is-application-status"`
	Notes          string                      `gorm:"type:text" json:"notes,omitempty"`
}

func (a *Application) HasResume() bool {
	return a.Resume.Path != ""
}
