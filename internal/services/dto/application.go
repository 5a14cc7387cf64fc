package dto

import (
	"encoding/json"
	"mime/multipart"
	"strings"

	"triveni_backend/internal/repositories"
)

// ApplicationRequest - публичная форма отклика (multipart или JSON).
// Skills принимаются JSON-массивом или строкой через запятую.
type ApplicationRequest struct {
	Name           string   `form:"name" json:"name"`
	Email          string   `form:"email" json:"email"`
	Phone          string   `form:"phone" json:"phone"`
	JobID          string   `form:"jobId" json:"jobId"`
	Experience     string   `form:"experience" json:"experience"`
	CurrentCompany string   `form:"currentCompany" json:"currentCompany"`
	ExpectedSalary string   `form:"expectedSalary" json:"expectedSalary"`
	NoticePeriod   string   `form:"noticePeriod" json:"noticePeriod"`
	CoverLetter    string   `form:"coverLetter" json:"coverLetter"`
	Skills         []string `form:"skills" json:"skills"`
	Education      string   `form:"education" json:"education"`

	Resume *multipart.FileHeader `form:"-" json:"-"`
}

// NormalizedSkills раскрывает значения вида "Go, SQL" или `["Go","SQL"]` и отбрасывает пустые.
func (r *ApplicationRequest) NormalizedSkills() []string {
	skills := make([]string, 0, len(r.Skills))
	for _, raw := range r.Skills {
		parts := strings.Split(raw, ",")
		if trimmed := strings.TrimSpace(raw); strings.HasPrefix(trimmed, "[") {
			var list []string
			if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
				parts = list
			}
		}
		for _, s := range parts {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
	}
	return skills
}

// UpdateApplicationRequest - правка отклика администратором.
type UpdateApplicationRequest struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	Experience     *string  `json:"experience"`
	CurrentCompany *string  `json:"currentCompany"`
	ExpectedSalary *string  `json:"expectedSalary"`
	NoticePeriod   *string  `json:"noticePeriod"`
	CoverLetter    *string  `json:"coverLetter"`
	Skills         []string `json:"skills"`
	Education      *string  `json:"education"`
	Status         *string  `json:"status"`
	Notes          *string  `json:"notes"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,is-application-status"`
}

type ApplicationStats struct {
	Total    int64                     `json:"total"`
	New      int64                     `json:"new"`
	ByStatus []repositories.GroupCount `json:"byStatus"`
}
