package validator

import (
	"testing"

	"triveni_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ReportsEveryFailingField(t *testing.T) {
	v := New()

	job := &models.Job{
		Type:   "Freelance",
		Status: "archived",
	}
	err := v.Validate(job)
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok, "ожидалась *ValidationError")

	for _, field := range []string{"title", "department", "type", "location", "experience", "salary", "description", "requirements", "status"} {
		assert.Contains(t, vErr.Errors, field)
	}
	assert.Equal(t, "'Freelance' is not an allowed value", vErr.Errors["type"])
}

func TestValidate_NestedFieldNames(t *testing.T) {
	v := New()

	blog := &models.Blog{
		Title:       "Steel",
		Slug:        "steel",
		Excerpt:     "e",
		Content:     "c",
		Category:    models.BlogCategoryConstruction,
		ReadingTime: 0,
		Status:      models.BlogStatusPublished,
		Author:      models.Author{Email: "not-an-email"},
	}
	err := v.Validate(blog)
	require.Error(t, err)

	vErr := err.(*ValidationError)
	assert.Equal(t, "This field is required", vErr.Errors["author.name"])
	assert.Equal(t, "Must be a valid email address", vErr.Errors["author.email"])
	assert.Equal(t, "Must be at least 1", vErr.Errors["readingTime"])
	assert.Len(t, vErr.Errors, 3)
}

func TestValidate_RequirementItemsMustBeNonEmpty(t *testing.T) {
	v := New()

	job := &models.Job{
		Title:        "Site Engineer",
		Department:   "Civil",
		Type:         models.JobTypeFullTime,
		Location:     "Pune",
		Experience:   "3+ years",
		Salary:       "Negotiable",
		Description:  "Supervise works",
		Requirements: []string{"AutoCAD", ""},
		Status:       models.JobStatusDraft,
	}
	err := v.Validate(job)
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Errors, "requirements[1]")

	job.Requirements = []string{"AutoCAD"}
	assert.NoError(t, v.Validate(job))
}
