package dto

import (
	"time"

	"triveni_backend/internal/repositories"
)

// Dashboard - сводка для главной страницы админки.
type Dashboard struct {
	Counts           DashboardCounts `json:"counts"`
	Engagement       Engagement      `json:"engagement"`
	Distribution     Distribution    `json:"distribution"`
	Growth           Growth          `json:"growth"`
	RecentActivities []Activity      `json:"recentActivities"`
	LastUpdated      time.Time       `json:"lastUpdated"`
}

// StatusCounts - "total" плюс ключ на каждое значение статуса, отсутствующие равны 0.
type StatusCounts map[string]int64

type DashboardCounts struct {
	Blogs        StatusCounts `json:"blogs"`
	Jobs         StatusCounts `json:"jobs"`
	Applications StatusCounts `json:"applications"`
	Contacts     StatusCounts `json:"contacts"`
}

type Engagement struct {
	TotalViews             int64   `json:"totalViews"`
	TotalComments          int64   `json:"totalComments"`
	TotalLikes             int64   `json:"totalLikes"`
	EngagementRate         int64   `json:"engagementRate"`
	AverageViewsPerPost    int64   `json:"averageViewsPerPost"`
	AverageCommentsPerPost float64 `json:"averageCommentsPerPost"`
}

type Distribution struct {
	BlogsByCategory        []repositories.GroupCount `json:"blogsByCategory"`
	ApplicationsByPosition []repositories.GroupCount `json:"applicationsByPosition"`
}

type Growth struct {
	Last30Days   Last30Days    `json:"last30Days"`
	PopularBlogs []PopularBlog `json:"popularBlogs"`
}

type Last30Days struct {
	NewBlogs        int64 `json:"newBlogs"`
	NewApplications int64 `json:"newApplications"`
	NewContacts     int64 `json:"newContacts"`
}

type PopularBlog struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Views    int    `json:"views"`
	Comments int    `json:"comments"`
	Likes    int    `json:"likes"`
	Category string `json:"category"`
}

// Activity - элемент ленты последних событий.
type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Time        string    `json:"time"`
	Timestamp   time.Time `json:"timestamp"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Status      string    `json:"status"`
}
