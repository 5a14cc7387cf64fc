package dto

import "triveni_backend/internal/repositories"

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// UpdateContactRequest - статус, приоритет, ответственный и необязательная заметка.
type UpdateContactRequest struct {
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	AssignedTo *string `json:"assignedTo"`
	Notes      *struct {
		Note string `json:"note"`
	} `json:"notes"`
}

type NoteRequest struct {
	Note string `json:"note"`
}

type BulkStatusRequest struct {
	ContactIDs []string `json:"contactIds" validate:"required,min=1"`
	Status     string   `json:"status" validate:"required,is-contact-status"`
}

type ContactStats struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"byStatus"`
	Recent       int64            `json:"recent"`
	Unread       int64            `json:"unread"`
	HighPriority int64            `json:"highPriority"`
}

type BulkStatusResult struct {
	UpdatedCount int64 `json:"updatedCount"`
}

// ByStatusMap переводит строки GROUP BY в карту статус -> количество.
func ByStatusMap(rows []repositories.GroupCount) map[string]int64 {
	m := make(map[string]int64, len(rows))
	for _, r := range rows {
		m[r.Name] = r.Count
	}
	return m
}
