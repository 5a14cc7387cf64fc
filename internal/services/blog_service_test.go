package services

import (
	"net/http"
	"strings"
	"testing"

	"triveni_backend/internal/events"
	"triveni_backend/internal/models"
	"triveni_backend/internal/services/dto"
	"triveni_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blogRequest(title string) *dto.BlogRequest {
	return &dto.BlogRequest{
		Title:       title,
		Excerpt:     "Short summary.",
		Content:     "Body of the article.",
		Author:      models.Author{Name: "Editorial Team", Email: "Editor@Triveni.COM"},
		Category:    string(models.BlogCategorySafety),
		Tags:        []string{"safety", " site "},
		ReadingTime: 4,
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":          "hello-world",
		"  Safety -- First!  ": "safety-first",
		"ISO 9001:2015 & You":  "iso-9001-2015-you",
		"already-a-slug":       "already-a-slug",
		"Déjà vu":              "d-j-vu",
		"---":                  "",
	}
	for in, want := range cases {
		got := Slugify(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, Slugify(got), "повторное применение не меняет slug: %q", in)
	}
}

func TestCreateBlog_DefaultsAndDerivedSlug(t *testing.T) {
	f := newFixture(t)

	blog, err := f.services.BlogService.CreateBlog(f.ctx, f.db, blogRequest("Working at Height: A Checklist"))
	require.NoError(t, err)

	assert.Equal(t, "working-at-height-a-checklist", blog.Slug)
	assert.Equal(t, models.BlogStatusPublished, blog.Status)
	assert.True(t, blog.AllowComments)
	assert.False(t, blog.PublishedAt.IsZero())
	assert.Equal(t, "editor@triveni.com", blog.Author.Email)
	assert.Equal(t, []string{"safety", "site"}, []string(blog.Tags))
	assert.Equal(t, []string{events.BlogPublished}, f.events.Types())
}

func TestCreateBlog_DuplicateSlugConflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.services.BlogService.CreateBlog(f.ctx, f.db, blogRequest("Hello World"))
	require.NoError(t, err)

	explicit := blogRequest("Another title")
	explicit.Slug = " HELLO-WORLD "
	_, err = f.services.BlogService.CreateBlog(f.ctx, f.db, explicit)
	requireAppError(t, err, http.StatusConflict, "Blog with this slug already exists")
}

func TestCreateBlog_DraftDoesNotPublishEvent(t *testing.T) {
	f := newFixture(t)

	req := blogRequest("Draft notes")
	req.Status = string(models.BlogStatusDraft)
	disabled := false
	req.AllowComments = &disabled

	blog, err := f.services.BlogService.CreateBlog(f.ctx, f.db, req)
	require.NoError(t, err)
	assert.False(t, blog.AllowComments)
	assert.Empty(t, f.events.Types())
}

func TestCreateBlog_Validation(t *testing.T) {
	f := newFixture(t)

	req := blogRequest(strings.Repeat("x", 201))
	req.Category = "Gardening"
	req.Author.Name = ""
	req.ReadingTime = 0

	_, err := f.services.BlogService.CreateBlog(f.ctx, f.db, req)
	fields := validationFields(t, err)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "author.name")
	assert.Contains(t, fields, "readingTime")
}

func TestUpdateBlog_SlugUniqueAndCountersUntouched(t *testing.T) {
	f := newFixture(t)
	first := testutil.CreateBlog(t, f.db)
	second := testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.Views = 42 })

	taken := first.Slug
	_, err := f.services.BlogService.UpdateBlog(f.ctx, f.db, second.ID, &dto.UpdateBlogRequest{Slug: &taken})
	requireAppError(t, err, http.StatusConflict, "Blog with this slug already exists")

	title := "Renamed"
	updated, err := f.services.BlogService.UpdateBlog(f.ctx, f.db, second.ID, &dto.UpdateBlogRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, second.Slug, updated.Slug)

	reloaded, err := f.services.BlogService.GetByID(f.ctx, f.db, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, reloaded.Views)
}

func TestUpdateBlog_PublishingDraftEmitsEvent(t *testing.T) {
	f := newFixture(t)
	draft := testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.Status = models.BlogStatusDraft })

	status := string(models.BlogStatusPublished)
	_, err := f.services.BlogService.UpdateBlog(f.ctx, f.db, draft.ID, &dto.UpdateBlogRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, []string{events.BlogPublished}, f.events.Types())
}

func TestListBlogs_VisitorsSeePublishedOnly(t *testing.T) {
	f := newFixture(t)
	testutil.CreateBlog(t, f.db)
	testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.Featured = true })
	testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.Status = models.BlogStatusDraft })

	q := dto.BlogListQuery{Admin: true}

	visitor, err := f.services.BlogService.ListBlogs(f.ctx, f.db, q, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), visitor.Pagination.Total)
	for _, b := range visitor.Items {
		assert.Empty(t, b.Content, "в списке нет текста статьи")
	}

	admin, err := f.services.BlogService.ListBlogs(f.ctx, f.db, q, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), admin.Pagination.Total)

	featured, err := f.services.BlogService.ListBlogs(f.ctx, f.db, dto.BlogListQuery{Featured: "true"}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), featured.Pagination.Total)
}

func TestSearchBlogs(t *testing.T) {
	f := newFixture(t)
	testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.Tags = []string{"Hydrotest"} })
	testutil.CreateBlog(t, f.db, func(b *models.Blog) {
		b.Tags = []string{"hydrotest"}
		b.Status = models.BlogStatusDraft
	})

	_, err := f.services.BlogService.SearchBlogs(f.ctx, f.db, dto.BlogSearchQuery{Q: "  "})
	requireAppError(t, err, http.StatusBadRequest, "Search query is required")

	res, err := f.services.BlogService.SearchBlogs(f.ctx, f.db, dto.BlogSearchQuery{Q: "HYDRO"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Pagination.Total)
}

func TestGetBySlug_IncrementsViewsAndCountsApprovedComments(t *testing.T) {
	f := newFixture(t)
	blog := testutil.CreateBlog(t, f.db)
	testutil.CreateComment(t, f.db, blog)
	testutil.CreateComment(t, f.db, blog, func(c *models.Comment) { c.Status = models.CommentStatusPending })
	draft := testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.Status = models.BlogStatusDraft })

	detail, err := f.services.BlogService.GetBySlug(f.ctx, f.db, blog.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.Views)
	assert.Equal(t, int64(1), detail.CommentsCount)

	_, err = f.services.BlogService.GetBySlug(f.ctx, f.db, draft.Slug)
	requireAppError(t, err, http.StatusNotFound, "Blog post not found")
}

func TestGetRelated_SameCategorySharedTag(t *testing.T) {
	f := newFixture(t)
	current := testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.Tags = []string{"piping", "welding"} })
	popular := testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.Tags = []string{"welding"}; b.Views = 50 })
	quiet := testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.Tags = []string{"piping"}; b.Views = 5 })
	testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.Tags = []string{"concrete"}; b.Views = 100 })
	testutil.CreateBlog(t, f.db, func(b *models.Blog) {
		b.Tags = []string{"piping"}
		b.Category = models.BlogCategorySafety
	})
	testutil.CreateBlog(t, f.db, func(b *models.Blog) {
		b.Tags = []string{"piping"}
		b.Status = models.BlogStatusDraft
	})

	related, err := f.services.BlogService.GetRelated(f.ctx, f.db, current.ID, 0)
	require.NoError(t, err)
	require.Len(t, related, 2)
	assert.Equal(t, popular.ID, related[0].ID)
	assert.Equal(t, quiet.ID, related[1].ID)

	one, err := f.services.BlogService.GetRelated(f.ctx, f.db, current.ID, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	untagged := testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.Tags = nil })
	none, err := f.services.BlogService.GetRelated(f.ctx, f.db, untagged.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteBlog_CascadesComments(t *testing.T) {
	f := newFixture(t)
	blog := testutil.CreateBlog(t, f.db)
	testutil.CreateComment(t, f.db, blog)

	require.NoError(t, f.services.BlogService.DeleteBlog(f.ctx, f.db, blog.ID))

	var comments int64
	require.NoError(t, f.db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, comments)

	err := f.services.BlogService.DeleteBlog(f.ctx, f.db, blog.ID)
	requireAppError(t, err, http.StatusNotFound, "")
}

func TestUploadImage(t *testing.T) {
	f := newFixture(t)

	res, err := f.services.BlogService.UploadImage(f.ctx, testutil.FileHeader(t, "cover.png", testutil.PNG))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.PublicID, "blogs/blog-"))
	assert.Equal(t, "/uploads/"+res.PublicID, res.ImageURL)

	_, err = f.services.BlogService.UploadImage(f.ctx, testutil.FileHeader(t, "cover.exe", testutil.PNG))
	requireAppError(t, err, http.StatusBadRequest, "The provided file type is not allowed")

	_, err = f.services.BlogService.UploadImage(f.ctx, nil)
	requireAppError(t, err, http.StatusBadRequest, "File is required")
}
