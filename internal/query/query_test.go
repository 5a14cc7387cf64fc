package query

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var itemSchema = Schema{
	SearchColumns: []string{"name", "email"},
	Filters:       map[string]string{"status": "status", "kind": "kind"},
	Sorts:         map[string]string{"seq": "seq", "name": "name"},
	DefaultSort:   "seq",
}

func TestBuild_Defaults(t *testing.T) {
	q := itemSchema.Build(Params{})

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 0, q.Offset())
	assert.True(t, q.Desc)
	assert.Equal(t, "seq", q.OrderColumn)
	assert.Empty(t, q.Conditions)
	assert.Empty(t, q.SearchTerm)
}

func TestBuild_AllSentinelAndEmptyFiltersAreSkipped(t *testing.T) {
	q := itemSchema.Build(Params{Filters: map[string]string{
		"status":  "all",
		"kind":    "  ",
		"unknown": "x",
	}})
	assert.Empty(t, q.Conditions)

	q = itemSchema.Build(Params{Filters: map[string]string{"status": "active", "kind": "a"}})
	assert.Equal(t, []Condition{{Column: "kind", Value: "a"}, {Column: "status", Value: "active"}}, q.Conditions)
}

func TestBuild_SortWhitelistAndDirection(t *testing.T) {
	q := itemSchema.Build(Params{SortBy: "name", SortOrder: "asc"})
	assert.Equal(t, "name ASC, id ASC", q.Order())

	q = itemSchema.Build(Params{SortBy: "name; DROP TABLE items", SortOrder: "sideways"})
	assert.Equal(t, "seq DESC, id DESC", q.Order())
}

func TestBuild_PageWindow(t *testing.T) {
	q := itemSchema.Build(Params{Page: 3, Limit: 5})
	assert.Equal(t, 10, q.Offset())

	q = itemSchema.Build(Params{Page: -1, Limit: 1000})
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, MaxLimit, q.Limit)
}

func TestBuild_SearchIsLoweredAndEscaped(t *testing.T) {
	q := itemSchema.Build(Params{Search: "  50%_Off "})
	assert.Equal(t, `50\%\_off`, q.SearchTerm)
	assert.Equal(t, []string{"name", "email"}, q.SearchColumns)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 5, 12)
	assert.Equal(t, Pagination{Current: 2, Limit: 5, Total: 12, Pages: 3, HasNext: true, HasPrev: true}, p)

	p = NewPagination(1, 10, 0)
	assert.Equal(t, 0, p.Pages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)

	p = NewPagination(3, 5, 15)
	assert.Equal(t, 3, p.Pages)
	assert.False(t, p.HasNext)
}

type item struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Email     string
	Status    string
	Kind      string
	Seq       int
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&item{}))
	return db
}

func TestFilterAndPaginate_AgainstDatabase(t *testing.T) {
	db := openDB(t)
	for i := 0; i < 23; i++ {
		status := "active"
		if i%3 == 0 {
			status = "closed"
		}
		require.NoError(t, db.Create(&item{
			ID:        fmt.Sprintf("id-%02d", i),
			Name:      fmt.Sprintf("Item %02d", i),
			Email:     fmt.Sprintf("user%d@example.com", i),
			Status:    status,
			Seq:       i,
		}).Error)
	}
	require.NoError(t, db.Create(&item{ID: "odd", Name: "100% Pure_Steel", Status: "active", Seq: 100}).Error)

	t.Run("pages sum to total", func(t *testing.T) {
		params := Params{Filters: map[string]string{"status": "active"}, Limit: 4}
		var total int64
		require.NoError(t, itemSchema.Build(params).Filter(db.Model(&item{})).Count(&total).Error)
		assert.Equal(t, int64(16), total)

		pages := NewPagination(1, 4, total).Pages
		seen := 0
		for page := 1; page <= pages; page++ {
			params.Page = page
			q := itemSchema.Build(params)
			var rows []item
			require.NoError(t, q.Paginate(q.Filter(db.Model(&item{}))).Find(&rows).Error)
			assert.LessOrEqual(t, len(rows), 4)
			seen += len(rows)
		}
		assert.Equal(t, int(total), seen)
		assert.Equal(t, 4, pages)
	})

	t.Run("search is case-insensitive substring over all columns", func(t *testing.T) {
		q := itemSchema.Build(Params{Search: "USER1"})
		var rows []item
		require.NoError(t, q.Filter(db.Model(&item{})).Find(&rows).Error)
		// user1, user10..user19
		assert.Len(t, rows, 11)
	})

	t.Run("wildcards in the term are literal", func(t *testing.T) {
		q := itemSchema.Build(Params{Search: "100%"})
		var rows []item
		require.NoError(t, q.Filter(db.Model(&item{})).Find(&rows).Error)
		require.Len(t, rows, 1)
		assert.Equal(t, "odd", rows[0].ID)

		q = itemSchema.Build(Params{Search: "_"})
		rows = nil
		require.NoError(t, q.Filter(db.Model(&item{})).Find(&rows).Error)
		assert.Len(t, rows, 1)
	})

	t.Run("unknown enum value matches nothing", func(t *testing.T) {
		q := itemSchema.Build(Params{Filters: map[string]string{"status": "bogus"}})
		var total int64
		require.NoError(t, q.Filter(db.Model(&item{})).Count(&total).Error)
		assert.Zero(t, total)
	})

	t.Run("default order is newest first", func(t *testing.T) {
		q := itemSchema.Build(Params{Limit: 2})
		var rows []item
		require.NoError(t, q.Paginate(q.Filter(db.Model(&item{}))).Find(&rows).Error)
		require.Len(t, rows, 2)
		assert.Equal(t, "odd", rows[0].ID)
		assert.Equal(t, "id-22", rows[1].ID)
	})
}

func TestArrayElementLike_PerDialect(t *testing.T) {
	assert.Equal(t,
		`EXISTS (SELECT 1 FROM json_each(tags) WHERE LOWER(json_each.value) LIKE ? ESCAPE '\')`,
		arrayElementLike("sqlite", "tags"))
	assert.Equal(t,
		`EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags::jsonb) AS elem WHERE LOWER(elem) LIKE ? ESCAPE '\')`,
		arrayElementLike("postgres", "tags"))
}

func TestBuild_MalformedUUIDFilterMatchesNothing(t *testing.T) {
	schema := Schema{
		Filters:     map[string]string{"ownerId": "owner_id"},
		UUIDFilters: map[string]bool{"ownerId": true},
	}

	q := schema.Build(Params{Filters: map[string]string{"ownerId": "42"}})
	assert.True(t, q.NoMatch)
	assert.Empty(t, q.Conditions)

	q = schema.Build(Params{Filters: map[string]string{"ownerId": "3f1c9d2e-0000-4000-8000-000000000000"}})
	assert.False(t, q.NoMatch)
	assert.Len(t, q.Conditions, 1)
}
