package repositories

import (
	"errors"
	"time"

	"triveni_backend/internal/models"
	"triveni_backend/internal/query"

	"gorm.io/gorm"
)

var (
	ErrContactNotFound = errors.New("contact not found")
)

var ContactSchema = query.Schema{
	SearchColumns: []string{"name", "email", "subject", "message"},
	Filters: map[string]string{
		"status":     "status",
		"priority":   "priority",
		"assignedTo": "assigned_to",
	},
	UUIDFilters: map[string]bool{"assignedTo": true},
	Sorts: map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"name":      "name",
		"status":    "status",
		"priority":  "priority",
	},
	DefaultSort: "createdAt",
}

type ContactRepository interface {
	Create(db *gorm.DB, contact *models.Contact) error
	FindByID(db *gorm.DB, id string) (*models.Contact, error)
	MarkRead(db *gorm.DB, contact *models.Contact) error
	List(db *gorm.DB, q query.Query) ([]models.Contact, int64, error)
	Update(db *gorm.DB, contact *models.Contact) error
	Delete(db *gorm.DB, id string) error
	BulkUpdateStatus(db *gorm.DB, ids []string, status models.ContactStatus) (int64, error)

	Count(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB) ([]GroupCount, error)
	CountCreatedSince(db *gorm.DB, since time.Time) (int64, error)
	CountUnread(db *gorm.DB) (int64, error)
	CountByPriority(db *gorm.DB, priority models.ContactPriority) (int64, error)
}

type ContactRepositoryImpl struct{}

func NewContactRepository() ContactRepository {
	return &ContactRepositoryImpl{}
}

func (r *ContactRepositoryImpl) Create(db *gorm.DB, contact *models.Contact) error {
	return db.Create(contact).Error
}

func (r *ContactRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Contact, error) {
	if !isUUID(id) {
		return nil, ErrContactNotFound
	}
	var contact models.Contact
	if err := db.Where("id = ?", id).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// MarkRead - первое открытие обращения: is_read = true, а статус new переходит в read.
func (r *ContactRepositoryImpl) MarkRead(db *gorm.DB, contact *models.Contact) error {
	updates := map[string]interface{}{"is_read": true}
	if contact.Status == models.ContactStatusNew {
		updates["status"] = models.ContactStatusRead
	}
	if err := db.Model(contact).Updates(updates).Error; err != nil {
		return err
	}
	contact.IsRead = true
	if s, ok := updates["status"]; ok {
		contact.Status = s.(models.ContactStatus)
	}
	return nil
}

func (r *ContactRepositoryImpl) List(db *gorm.DB, q query.Query) ([]models.Contact, int64, error) {
	contacts := make([]models.Contact, 0)
	var total int64

	if err := q.Filter(db.Model(&models.Contact{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Paginate(q.Filter(db.Model(&models.Contact{}))).Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *ContactRepositoryImpl) Update(db *gorm.DB, contact *models.Contact) error {
	res := db.Model(contact).
		Select("*").
		Omit("id", "created_at").
		Updates(contact)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *ContactRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if !isUUID(id) {
		return ErrContactNotFound
	}
	res := db.Where("id = ?", id).Delete(&models.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// BulkUpdateStatus обновляет одним запросом. Некорректные id просто пропускаются.
func (r *ContactRepositoryImpl) BulkUpdateStatus(db *gorm.DB, ids []string, status models.ContactStatus) (int64, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 0, nil
	}

	res := db.Model(&models.Contact{}).
		Where("id IN ?", valid).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now().UTC()})
	return res.RowsAffected, res.Error
}

func (r *ContactRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Contact{}).Count(&count).Error
	return count, err
}

func (r *ContactRepositoryImpl) CountByStatus(db *gorm.DB) ([]GroupCount, error) {
	return countGrouped(db, &models.Contact{}, "status", 0)
}

func (r *ContactRepositoryImpl) CountCreatedSince(db *gorm.DB, since time.Time) (int64, error) {
	return countSince(db, &models.Contact{}, since)
}

func (r *ContactRepositoryImpl) CountUnread(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Contact{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

func (r *ContactRepositoryImpl) CountByPriority(db *gorm.DB, priority models.ContactPriority) (int64, error) {
	var count int64
	err := db.Model(&models.Contact{}).Where("priority = ?", priority).Count(&count).Error
	return count, err
}
