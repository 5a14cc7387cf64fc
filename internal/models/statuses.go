package models

type UserRole string
type JobType string
type JobStatus string
type ApplicationStatus string
type BlogCategory string
type BlogStatus string
type CommentStatus string
type ContactStatus string
type ContactPriority string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"

	JobStatusActive JobStatus = "active"
	JobStatusDraft  JobStatus = "draft"
	JobStatusClosed JobStatus = "closed"

	ApplicationStatusNew       ApplicationStatus = "new"
	ApplicationStatusReviewed  ApplicationStatus = "reviewed"
	ApplicationStatusInterview ApplicationStatus = "interview"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusHired     ApplicationStatus = "hired"

	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusArchived  BlogStatus = "archived"

	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"

	ContactStatusNew     ContactStatus = "new"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
	ContactStatusClosed  ContactStatus = "closed"

	ContactPriorityLow    ContactPriority = "low"
	ContactPriorityMedium ContactPriority = "medium"
	ContactPriorityHigh   ContactPriority = "high"
)

const (
	BlogCategoryStructural     BlogCategory = "Structural Engineering"
	BlogCategoryPiping         BlogCategory = "Piping Systems"
	BlogCategoryMechanical     BlogCategory = "Mechanical Works"
	BlogCategoryElectrical     BlogCategory = "Electrical Systems"
	BlogCategorySafety         BlogCategory = "Safety Standards"
	BlogCategoryIndustry       BlogCategory = "Industry Insights"
	BlogCategoryConstruction   BlogCategory = "Construction"
	BlogCategoryTechnology     BlogCategory = "Technology"
	BlogCategorySustainability BlogCategory = "Sustainability"
)

// Упорядоченные списки значений: используются валидатором и отчетами,
// чтобы в разбивке по статусам присутствовали все ключи.
var (
	UserRoles = []UserRole{UserRoleUser, UserRoleAdmin}

	JobTypes    = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}
	JobStatuses = []JobStatus{JobStatusActive, JobStatusDraft, JobStatusClosed}

	ApplicationStatuses = []ApplicationStatus{
		ApplicationStatusNew,
		ApplicationStatusReviewed,
		ApplicationStatusInterview,
		ApplicationStatusRejected,
		ApplicationStatusHired,
	}

	BlogCategories = []BlogCategory{
		BlogCategoryStructural,
		BlogCategoryPiping,
		BlogCategoryMechanical,
		BlogCategoryElectrical,
		BlogCategorySafety,
		BlogCategoryIndustry,
		BlogCategoryConstruction,
		BlogCategoryTechnology,
		BlogCategorySustainability,
	}
	BlogStatuses = []BlogStatus{BlogStatusDraft, BlogStatusPublished, BlogStatusArchived}

	CommentStatuses = []CommentStatus{CommentStatusPending, CommentStatusApproved, CommentStatusRejected}

	ContactStatuses   = []ContactStatus{ContactStatusNew, ContactStatusRead, ContactStatusReplied, ContactStatusClosed}
	ContactPriorities = []ContactPriority{ContactPriorityLow, ContactPriorityMedium, ContactPriorityHigh}
)

func contains[T ~string](values []T, v string) bool {
	for _, candidate := range values {
		if string(candidate) == v {
			return true
		}
	}
	return false
}

func IsValidUserRole(v string) bool          { return contains(UserRoles, v) }
func IsValidJobType(v string) bool           { return contains(JobTypes, v) }
func IsValidJobStatus(v string) bool         { return contains(JobStatuses, v) }
func IsValidApplicationStatus(v string) bool { return contains(ApplicationStatuses, v) }
func IsValidBlogCategory(v string) bool      { return contains(BlogCategories, v) }
func IsValidBlogStatus(v string) bool        { return contains(BlogStatuses, v) }
func IsValidCommentStatus(v string) bool     { return contains(CommentStatuses, v) }
func IsValidContactStatus(v string) bool     { return contains(ContactStatuses, v) }
func IsValidContactPriority(v string) bool   { return contains(ContactPriorities, v) }
