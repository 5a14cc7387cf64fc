package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"triveni_backend/internal/metrics"
	"triveni_backend/internal/models"
	"triveni_backend/internal/repositories"
	"triveni_backend/internal/services/dto"
	"triveni_backend/pkg/apperrors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	growthWindow       = 30 * 24 * time.Hour
	recentPerSource    = 5
	recentActivityCap  = 8
	popularBlogsCap    = 5
	topPositionsCap    = 10
	maxEngagementRate  = 100
	activityTypeBlog   = "blog"
	activityTypeApply  = "application"
	activityIconBlog   = "FileText"
	activityIconApply  = "Briefcase"
	activityColorBlog  = "text-blue-500"
	activityColorApply = "text-green-500"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, db *gorm.DB) (*dto.Dashboard, error)
}

type dashboardService struct {
	blogRepo        repositories.BlogRepository
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
	contactRepo     repositories.ContactRepository
	now             func() time.Time
}

func NewDashboardService(
	blogRepo repositories.BlogRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	contactRepo repositories.ContactRepository,
) DashboardService {
	return &dashboardService{
		blogRepo:        blogRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		contactRepo:     contactRepo,
		now:             time.Now,
	}
}

// GetDashboard собирает отчет параллельно: каждый подзапрос пишет в свой слот,
// первая ошибка отменяет остальные и проваливает весь отчет.
func (s *dashboardService) GetDashboard(ctx context.Context, db *gorm.DB) (*dto.Dashboard, error) {
	started := time.Now()
	now := s.now().UTC()
	since := now.Add(-growthWindow)

	var (
		blogStatus, jobStatus, appStatus, contactStatus []repositories.GroupCount
		blogTotal, featured                             int64
		totals                                          *repositories.EngagementTotals
		byCategory, byPosition                          []repositories.GroupCount
		growth                                          dto.Last30Days
		popular                                         []models.Blog
		recentBlogs                                     []models.Blog
		recentApps                                      []models.Application
	)

	g, gctx := errgroup.WithContext(ctx)
	q := db.WithContext(gctx)

	g.Go(func() (err error) { blogStatus, err = s.blogRepo.CountByStatus(q); return })
	g.Go(func() (err error) { blogTotal, err = s.blogRepo.Count(q); return })
	g.Go(func() (err error) { featured, err = s.blogRepo.CountFeatured(q); return })
	g.Go(func() (err error) { jobStatus, err = s.jobRepo.CountByStatus(q); return })
	g.Go(func() (err error) { appStatus, err = s.applicationRepo.CountByStatus(q); return })
	g.Go(func() (err error) { contactStatus, err = s.contactRepo.CountByStatus(q); return })
	g.Go(func() (err error) { totals, err = s.blogRepo.SumEngagement(q); return })
	g.Go(func() (err error) { byCategory, err = s.blogRepo.CountByCategory(q); return })
	g.Go(func() (err error) { byPosition, err = s.applicationRepo.CountByPosition(q, topPositionsCap); return })
	g.Go(func() (err error) { growth.NewBlogs, err = s.blogRepo.CountCreatedSince(q, since); return })
	g.Go(func() (err error) { growth.NewApplications, err = s.applicationRepo.CountCreatedSince(q, since); return })
	g.Go(func() (err error) { growth.NewContacts, err = s.contactRepo.CountCreatedSince(q, since); return })
	g.Go(func() (err error) { popular, err = s.blogRepo.FindPopular(q, popularBlogsCap); return })
	g.Go(func() (err error) { recentBlogs, err = s.blogRepo.FindRecent(q, recentPerSource); return })
	g.Go(func() (err error) { recentApps, err = s.applicationRepo.FindRecent(q, recentPerSource); return })

	if err := g.Wait(); err != nil {
		return nil, apperrors.ErrDatabase(err, "dashboard")
	}

	blogs := statusCounts(blogStatus, models.BlogStatuses)
	blogs["total"] = blogTotal
	blogs["featured"] = featured

	report := &dto.Dashboard{
		Counts: dto.DashboardCounts{
			Blogs:        blogs,
			Jobs:         statusCounts(jobStatus, models.JobStatuses),
			Applications: statusCounts(appStatus, models.ApplicationStatuses),
			Contacts:     statusCounts(contactStatus, models.ContactStatuses),
		},
		Engagement: buildEngagement(totals, blogTotal),
		Distribution: dto.Distribution{
			BlogsByCategory:        byCategory,
			ApplicationsByPosition: byPosition,
		},
		Growth: dto.Growth{
			Last30Days:   growth,
			PopularBlogs: popularBlogs(popular),
		},
		RecentActivities: recentActivities(recentBlogs, recentApps, now),
		LastUpdated:      now,
	}

	metrics.ObserveDashboard(time.Since(started))
	return report, nil
}

// statusCounts - ключ на каждое значение перечисления (0, если строк нет) плюс "total".
func statusCounts[T ~string](rows []repositories.GroupCount, values []T) dto.StatusCounts {
	counts := make(dto.StatusCounts, len(values)+1)
	for _, v := range values {
		counts[string(v)] = 0
	}
	var total int64
	for _, r := range rows {
		counts[r.Name] = r.Count
		total += r.Count
	}
	counts["total"] = total
	return counts
}

func buildEngagement(t *repositories.EngagementTotals, blogs int64) dto.Engagement {
	e := dto.Engagement{
		TotalViews:     t.Views,
		TotalComments:  t.Comments,
		TotalLikes:     t.Likes,
		EngagementRate: EngagementRate(t.Views, t.Comments, t.Likes, blogs),
	}
	if blogs > 0 {
		e.AverageViewsPerPost = int64(roundHalfUp(float64(t.Views) / float64(blogs)))
		e.AverageCommentsPerPost = roundHalfUp(float64(t.Comments)/float64(blogs)*10) / 10
	}
	return e
}

// EngagementRate = min(round((views + 10*comments + 5*likes) / blogs / 10), 100); 0 без статей.
func EngagementRate(views, comments, likes, blogs int64) int64 {
	if blogs <= 0 {
		return 0
	}
	weighted := float64(views + 10*comments + 5*likes)
	rate := int64(roundHalfUp(weighted / float64(blogs) / 10))
	if rate > maxEngagementRate {
		return maxEngagementRate
	}
	return rate
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func popularBlogs(blogs []models.Blog) []dto.PopularBlog {
	out := make([]dto.PopularBlog, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, dto.PopularBlog{
			ID:       b.ID,
			Title:    b.Title,
			Views:    b.Views,
			Comments: b.Comments,
			Likes:    b.Likes,
			Category: string(b.Category),
		})
	}
	return out
}

func recentActivities(blogs []models.Blog, apps []models.Application, now time.Time) []dto.Activity {
	activities := make([]dto.Activity, 0, len(blogs)+len(apps))

	for _, b := range blogs {
		at := b.UpdatedAt
		if at.IsZero() {
			at = b.CreatedAt
		}
		activities = append(activities, dto.Activity{
			ID:          b.ID,
			Type:        activityTypeBlog,
			Title:       blogActivityTitle(b.Status),
			Description: b.Title,
			Time:        FormatTimeAgo(at, now),
			Timestamp:   at,
			Icon:        activityIconBlog,
			Color:       activityColorBlog,
			Status:      string(b.Status),
		})
	}

	for _, a := range apps {
		activities = append(activities, dto.Activity{
			ID:          a.ID,
			Type:        activityTypeApply,
			Title:       "New Job Application",
			Description: a.Name + " - " + a.Position,
			Time:        FormatTimeAgo(a.CreatedAt, now),
			Timestamp:   a.CreatedAt,
			Icon:        activityIconApply,
			Color:       activityColorApply,
			Status:      string(a.Status),
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > recentActivityCap {
		activities = activities[:recentActivityCap]
	}
	return activities
}

func blogActivityTitle(status models.BlogStatus) string {
	switch status {
	case models.BlogStatusPublished:
		return "New Blog Published"
	case models.BlogStatusDraft:
		return "Blog Draft Saved"
	default:
		return "Blog Updated"
	}
}

// FormatTimeAgo - относительное время для ленты: "Just now", "5m ago", "3h ago", "2d ago", "4mo ago".
func FormatTimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t).Seconds())
	switch {
	case seconds < 60:
		return "Just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%dd ago", seconds/86400)
	default:
		return fmt.Sprintf("%dmo ago", seconds/2592000)
	}
}
