package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"triveni_backend/internal/email"
	"triveni_backend/internal/events"
	"triveni_backend/internal/logger"
	"triveni_backend/internal/models"
	"triveni_backend/internal/query"
	"triveni_backend/internal/repositories"
	"triveni_backend/internal/services/dto"
	"triveni_backend/internal/validator"
	"triveni_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// RecentContactsWindow - окно для счетчика "recent" в статистике обращений.
const RecentContactsWindow = 7 * 24 * time.Hour

type ContactService interface {
	CreateContact(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) (*models.Contact, error)
	ListContacts(ctx context.Context, db *gorm.DB, q dto.ContactListQuery) (*dto.ListResult[models.Contact], error)
	GetContact(ctx context.Context, db *gorm.DB, id string) (*models.Contact, error)
	UpdateContact(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateContactRequest) (*models.Contact, error)
	AddNote(ctx context.Context, db *gorm.DB, userID, id string, req *dto.NoteRequest) (*models.Contact, error)
	DeleteContact(ctx context.Context, db *gorm.DB, id string) error
	BulkUpdateStatus(ctx context.Context, db *gorm.DB, req *dto.BulkStatusRequest) (*dto.BulkStatusResult, error)
	GetContactStats(ctx context.Context, db *gorm.DB) (*dto.ContactStats, error)
}

type contactService struct {
	contactRepo repositories.ContactRepository
	validator   *validator.Validator
	publisher   events.Publisher
	notifier    *email.Notifier
	now         func() time.Time
}

func NewContactService(
	contactRepo repositories.ContactRepository,
	v *validator.Validator,
	publisher events.Publisher,
	notifier *email.Notifier,
) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		validator:   v,
		publisher:   publisher,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *contactService) CreateContact(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		Name:     strings.TrimSpace(req.Name),
		Email:    normalizeEmail(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Company:  strings.TrimSpace(req.Company),
		Subject:  strings.TrimSpace(req.Subject),
		Message:  strings.TrimSpace(req.Message),
		Status:   models.ContactStatusNew,
		Priority: models.ContactPriorityMedium,
		Notes:    []models.ContactNote{},
	}
	if err := validateModel(s.validator, contact); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Create(db, contact); err != nil {
		return nil, handleContactError(err)
	}

	logger.CtxInfo(ctx, "Contact inquiry received", "contact_id", contact.ID)
	s.publisher.Publish(ctx, events.ContactReceived, map[string]string{
		"contactId": contact.ID,
		"subject":   contact.Subject,
	})
	go s.notifier.ContactReceived(context.WithoutCancel(ctx), contact)

	return contact, nil
}

func (s *contactService) ListContacts(ctx context.Context, db *gorm.DB, q dto.ContactListQuery) (*dto.ListResult[models.Contact], error) {
	built := repositories.ContactSchema.Build(q.ToParams())
	contacts, total, err := s.contactRepo.List(db, built)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "contact")
	}
	return &dto.ListResult[models.Contact]{Items: contacts, Pagination: query.ForQuery(built, total)}, nil
}

// GetContact помечает обращение прочитанным при первом открытии.
func (s *contactService) GetContact(ctx context.Context, db *gorm.DB, id string) (*models.Contact, error) {
	contact, err := s.contactRepo.FindByID(db, id)
	if err != nil {
		return nil, handleContactError(err)
	}
	if !contact.IsRead {
		if err := s.contactRepo.MarkRead(db, contact); err != nil {
			return nil, handleContactError(err)
		}
	}
	return contact, nil
}

func (s *contactService) UpdateContact(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateContactRequest) (*models.Contact, error) {
	contact, err := s.contactRepo.FindByID(db, id)
	if err != nil {
		return nil, handleContactError(err)
	}

	if req.Status != nil && *req.Status != "" {
		contact.Status = models.ContactStatus(*req.Status)
	}
	if req.Priority != nil && *req.Priority != "" {
		contact.Priority = models.ContactPriority(*req.Priority)
	}
	if req.AssignedTo != nil {
		assignee := strings.TrimSpace(*req.AssignedTo)
		switch {
		case assignee == "":
			contact.AssignedTo = nil
		case !isValidID(assignee):
			return nil, fieldError("assignedTo", "Must be a valid identifier")
		default:
			contact.AssignedTo = &assignee
		}
	}
	if req.Notes != nil && strings.TrimSpace(req.Notes.Note) != "" {
		contact.Notes = append(contact.Notes, s.note(userID, req.Notes.Note))
	}

	if err := validateModel(s.validator, contact); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Update(db, contact); err != nil {
		return nil, handleContactError(err)
	}
	return contact, nil
}

func (s *contactService) AddNote(ctx context.Context, db *gorm.DB, userID, id string, req *dto.NoteRequest) (*models.Contact, error) {
	if strings.TrimSpace(req.Note) == "" {
		return nil, apperrors.NewBadRequestError("Note is required")
	}
	contact, err := s.contactRepo.FindByID(db, id)
	if err != nil {
		return nil, handleContactError(err)
	}
	contact.Notes = append(contact.Notes, s.note(userID, req.Note))
	if err := s.contactRepo.Update(db, contact); err != nil {
		return nil, handleContactError(err)
	}
	return contact, nil
}

func (s *contactService) DeleteContact(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.contactRepo.Delete(db, id); err != nil {
		return handleContactError(err)
	}
	return nil
}

func (s *contactService) BulkUpdateStatus(ctx context.Context, db *gorm.DB, req *dto.BulkStatusRequest) (*dto.BulkStatusResult, error) {
	if len(req.ContactIDs) == 0 || req.Status == "" {
		return nil, apperrors.NewBadRequestError("Contact IDs and status are required")
	}
	if !models.IsValidContactStatus(req.Status) {
		return nil, apperrors.NewBadRequestError("Invalid status value")
	}
	updated, err := s.contactRepo.BulkUpdateStatus(db, req.ContactIDs, models.ContactStatus(req.Status))
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "contact")
	}
	return &dto.BulkStatusResult{UpdatedCount: updated}, nil
}

func (s *contactService) GetContactStats(ctx context.Context, db *gorm.DB) (*dto.ContactStats, error) {
	rows, err := s.contactRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "contact")
	}
	stats := &dto.ContactStats{ByStatus: dto.ByStatusMap(rows)}
	for _, r := range rows {
		stats.Total += r.Count
	}
	for _, st := range models.ContactStatuses {
		if _, ok := stats.ByStatus[string(st)]; !ok {
			stats.ByStatus[string(st)] = 0
		}
	}

	if stats.Recent, err = s.contactRepo.CountCreatedSince(db, s.now().UTC().Add(-RecentContactsWindow)); err != nil {
		return nil, apperrors.ErrDatabase(err, "contact")
	}
	if stats.Unread, err = s.contactRepo.CountUnread(db); err != nil {
		return nil, apperrors.ErrDatabase(err, "contact")
	}
	if stats.HighPriority, err = s.contactRepo.CountByPriority(db, models.ContactPriorityHigh); err != nil {
		return nil, apperrors.ErrDatabase(err, "contact")
	}
	return stats, nil
}

func (s *contactService) note(userID, text string) models.ContactNote {
	return models.ContactNote{
		Note:    strings.TrimSpace(text),
		AddedBy: userID,
		AddedAt: s.now().UTC(),
	}
}

func handleContactError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrContactNotFound) {
		return apperrors.ErrNotFound(err, "contact", "Contact inquiry not found")
	}
	return apperrors.ErrDatabase(err, "contact")
}
