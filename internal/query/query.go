// Package query переводит параметры списка (поиск, фильтры, сортировка, страница)
// в условия и порядок для GORM. Пакет не обращается к БД сам.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// All - значение фильтра, означающее "без фильтра".
	All = "all"
)

// Params - параметры запроса списка, уже разобранные из строки запроса.
type Params struct {
	Search    string
	Filters   map[string]string // имя параметра -> значение
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Schema описывает, какие параметры допустимы для сущности.
// Все имена колонок берутся только отсюда, пользовательский ввод в SQL не попадает.
type Schema struct {
	SearchColumns []string          // колонки или выражения для подстрочного поиска
	ArrayColumns  []string          // JSON-массивы строк, поиск по каждому элементу
	Filters       map[string]string // параметр -> колонка
	UUIDFilters   map[string]bool   // параметры из Filters, чьи колонки хранят UUID
	Sorts         map[string]string // параметр -> колонка
	DefaultSort   string            // параметр из Sorts
}

// Condition - точное совпадение колонки.
type Condition struct {
	Column string
	Value  interface{}
}

// Query - результат трансляции параметров.
type Query struct {
	Conditions    []Condition
	NoMatch       bool // значение UUID-фильтра некорректно, выборка пуста
	SearchColumns []string
	ArrayColumns  []string
	SearchTerm    string // уже в нижнем регистре и экранированный для LIKE
	OrderColumn   string
	Desc          bool
	Page          int
	Limit         int
}

// Build транслирует параметры по схеме.
func (s Schema) Build(p Params) Query {
	q := Query{
		Page:  p.Page,
		Limit: p.Limit,
		Desc:  !strings.EqualFold(strings.TrimSpace(p.SortOrder), "asc"),
	}

	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	// Порядок обхода фильтров фиксированный, чтобы SQL был детерминированным.
	for _, name := range sortedKeys(s.Filters) {
		value := strings.TrimSpace(p.Filters[name])
		if value == "" || value == All {
			continue
		}
		if s.UUIDFilters[name] {
			if _, err := uuid.Parse(value); err != nil {
				q.NoMatch = true
				continue
			}
		}
		q.Conditions = append(q.Conditions, Condition{Column: s.Filters[name], Value: value})
	}

	if term := strings.TrimSpace(p.Search); term != "" && len(s.SearchColumns)+len(s.ArrayColumns) > 0 {
		q.SearchColumns = s.SearchColumns
		q.ArrayColumns = s.ArrayColumns
		q.SearchTerm = escapeLike(strings.ToLower(term))
	}

	column, ok := s.Sorts[p.SortBy]
	if !ok {
		column = s.Sorts[s.DefaultSort]
	}
	q.OrderColumn = column

	return q
}

// Where добавляет условие точного совпадения к уже построенному запросу.
func (q Query) Where(column string, value interface{}) Query {
	conds := make([]Condition, 0, len(q.Conditions)+1)
	conds = append(conds, q.Conditions...)
	q.Conditions = append(conds, Condition{Column: column, Value: value})
	return q
}

// Offset - (page-1) * limit
func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Order возвращает выражение ORDER BY. id добавляется для стабильного порядка страниц.
func (q Query) Order() string {
	if q.OrderColumn == "" {
		return ""
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id %s", q.OrderColumn, dir, dir)
}

// Filter применяет только условия (без сортировки и страниц), годится для COUNT.
func (q Query) Filter(db *gorm.DB) *gorm.DB {
	if q.NoMatch {
		db = db.Where("1 = 0")
	}
	for _, c := range q.Conditions {
		db = db.Where(c.Column+" = ?", c.Value)
	}

	if q.SearchTerm != "" {
		pattern := "%" + q.SearchTerm + "%"
		clauses := make([]string, 0, len(q.SearchColumns)+len(q.ArrayColumns))
		args := make([]interface{}, 0, len(q.SearchColumns)+len(q.ArrayColumns))
		for _, col := range q.SearchColumns {
			clauses = append(clauses, "LOWER("+col+`) LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		for _, col := range q.ArrayColumns {
			clauses = append(clauses, arrayElementLike(db.Dialector.Name(), col))
			args = append(args, pattern)
		}
		db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	return db
}

// Paginate применяет сортировку, смещение и лимит.
func (q Query) Paginate(db *gorm.DB) *gorm.DB {
	if order := q.Order(); order != "" {
		db = db.Order(order)
	}
	return db.Offset(q.Offset()).Limit(q.Limit)
}

// arrayElementLike сравнивает с шаблоном каждый элемент массива, а не его JSON-текст.
func arrayElementLike(dialect, col string) string {
	if dialect == "sqlite" {
		return "EXISTS (SELECT 1 FROM json_each(" + col + `) WHERE LOWER(json_each.value) LIKE ? ESCAPE '\')`
	}
	return "EXISTS (SELECT 1 FROM jsonb_array_elements_text(" + col + `::jsonb) AS elem WHERE LOWER(elem) LIKE ? ESCAPE '\')`
}

// escapeLike экранирует спецсимволы LIKE, чтобы поиск был подстрочным, а не шаблонным.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
