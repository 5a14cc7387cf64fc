package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupCount - строка агрегата "значение -> количество".
type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// isUUID - некорректный id трактуем как "не найдено", а не как ошибку БД.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// IsDuplicateKeyError распознает нарушение уникального индекса.
// TranslateError покрывает postgres и sqlite, строковая проверка - запасной вариант.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

// countGrouped - COUNT(*) GROUP BY column, по убыванию количества.
func countGrouped(db *gorm.DB, model interface{}, column string, limit int) ([]GroupCount, error) {
	rows := make([]GroupCount, 0)
	tx := db.Model(model).
		Select(column + " AS name, COUNT(*) AS count").
		Group(column).
		Order("count DESC, name ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Scan(&rows).Error
	return rows, err
}

func countSince(db *gorm.DB, model interface{}, since time.Time) (int64, error) {
	var count int64
	err := db.Model(model).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// incrementColumn - атомарный UPDATE col = col + delta, без чтения в память.
func incrementColumn(db *gorm.DB, model interface{}, id, column string, delta int) (int64, error) {
	res := db.Model(model).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	return res.RowsAffected, res.Error
}
