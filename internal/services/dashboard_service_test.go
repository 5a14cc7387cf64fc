package services

import (
	"testing"
	"time"

	"triveni_backend/internal/models"
	"triveni_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementRate(t *testing.T) {
	tests := []struct {
		name                          string
		views, comments, likes, blogs int64
		want                          int64
	}{
		{"no blogs", 500, 10, 10, 0, 0},
		{"weighted sum", 100, 2, 2, 1, 13},
		{"averaged over blogs", 100, 2, 2, 2, 7},
		{"rounds half up", 5, 0, 0, 1, 1},
		{"rounds down", 4, 0, 0, 1, 0},
		{"capped", 5000, 0, 0, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EngagementRate(tt.views, tt.comments, tt.likes, tt.blogs))
		})
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{59 * time.Minute, "59m ago"},
		{5 * time.Hour, "5h ago"},
		{3 * 24 * time.Hour, "3d ago"},
		{29 * 24 * time.Hour, "29d ago"},
		{65 * 24 * time.Hour, "2mo ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimeAgo(now.Add(-tt.ago), now), tt.ago.String())
	}
}

func TestGetDashboard_EmptyDatabase(t *testing.T) {
	f := newFixture(t)

	report, err := f.services.DashboardService.GetDashboard(f.ctx, f.db)
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.Counts.Blogs["total"])
	assert.Equal(t, int64(0), report.Counts.Blogs["featured"])
	for _, st := range models.JobStatuses {
		assert.Contains(t, report.Counts.Jobs, string(st))
	}
	assert.Contains(t, report.Counts.Contacts, "total")
	assert.Zero(t, report.Engagement.EngagementRate)
	assert.Empty(t, report.RecentActivities)
	assert.False(t, report.LastUpdated.IsZero())
}

func TestGetDashboard_AggregatesEverySection(t *testing.T) {
	f := newFixture(t)

	testutil.CreateBlog(t, f.db, func(b *models.Blog) {
		b.Views = 100
		b.Comments = 2
		b.Likes = 2
		b.Featured = true
	})
	testutil.CreateBlog(t, f.db, func(b *models.Blog) {
		b.Status = models.BlogStatusDraft
		b.Category = models.BlogCategorySafety
	})
	job := testutil.CreateJob(t, f.db)
	testutil.CreateJob(t, f.db, func(j *models.Job) { j.Status = models.JobStatusClosed })
	testutil.CreateApplication(t, f.db, job)
	testutil.CreateApplication(t, f.db, job, func(a *models.Application) { a.Status = models.ApplicationStatusInterview })
	testutil.CreateContact(t, f.db)

	report, err := f.services.DashboardService.GetDashboard(f.ctx, f.db)
	require.NoError(t, err)

	blogs := report.Counts.Blogs
	assert.Equal(t, int64(2), blogs["total"])
	assert.Equal(t, int64(1), blogs["published"])
	assert.Equal(t, int64(1), blogs["draft"])
	assert.Equal(t, int64(0), blogs["archived"])
	assert.Equal(t, int64(1), blogs["featured"])

	assert.Equal(t, int64(2), report.Counts.Jobs["total"])
	assert.Equal(t, int64(1), report.Counts.Jobs["closed"])
	assert.Equal(t, int64(2), report.Counts.Applications["total"])
	assert.Equal(t, int64(1), report.Counts.Applications["interview"])
	assert.Equal(t, int64(1), report.Counts.Contacts["new"])

	e := report.Engagement
	assert.Equal(t, int64(100), e.TotalViews)
	assert.Equal(t, int64(2), e.TotalComments)
	assert.Equal(t, int64(2), e.TotalLikes)
	assert.Equal(t, int64(7), e.EngagementRate)
	assert.Equal(t, int64(50), e.AverageViewsPerPost)
	assert.InDelta(t, 1.0, e.AverageCommentsPerPost, 0.0001)

	assert.Len(t, report.Distribution.BlogsByCategory, 2)
	require.Len(t, report.Distribution.ApplicationsByPosition, 1)
	assert.Equal(t, job.Title, report.Distribution.ApplicationsByPosition[0].Name)
	assert.Equal(t, int64(2), report.Distribution.ApplicationsByPosition[0].Count)

	assert.Equal(t, int64(2), report.Growth.Last30Days.NewBlogs)
	assert.Equal(t, int64(2), report.Growth.Last30Days.NewApplications)
	assert.Equal(t, int64(1), report.Growth.Last30Days.NewContacts)
	require.Len(t, report.Growth.PopularBlogs, 1, "черновики не попадают в популярные")
	assert.Equal(t, 100, report.Growth.PopularBlogs[0].Views)

	require.Len(t, report.RecentActivities, 4)
	for i := 1; i < len(report.RecentActivities); i++ {
		assert.False(t, report.RecentActivities[i].Timestamp.After(report.RecentActivities[i-1].Timestamp))
	}
}

func TestRecentActivities_MergeSortAndCap(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	blogs := make([]models.Blog, 0, 5)
	apps := make([]models.Application, 0, 5)
	for i := 0; i < 5; i++ {
		b := models.Blog{Title: "Post", Status: models.BlogStatusPublished}
		b.ID = "blog"
		b.UpdatedAt = now.Add(-time.Duration(2*i) * time.Hour)
		blogs = append(blogs, b)

		a := models.Application{Name: "Asha", Position: "Welder", Status: models.ApplicationStatusNew}
		a.ID = "app"
		a.CreatedAt = now.Add(-time.Duration(2*i+1) * time.Hour)
		apps = append(apps, a)
	}
	draft := models.Blog{Title: "Draft", Status: models.BlogStatusDraft}
	draft.CreatedAt = now.Add(-30 * time.Second)
	blogs = append(blogs, draft)

	got := recentActivities(blogs, apps, now)
	require.Len(t, got, 8)

	assert.Equal(t, "New Blog Published", got[0].Title)
	assert.Equal(t, "Blog Draft Saved", got[1].Title)
	assert.Equal(t, "Just now", got[1].Time)
	assert.Equal(t, "New Job Application", got[2].Title)
	assert.Equal(t, "Asha - Welder", got[2].Description)
	assert.Equal(t, "Briefcase", got[2].Icon)
	assert.Equal(t, "text-green-500", got[2].Color)
	assert.Equal(t, "1h ago", got[2].Time)
}
