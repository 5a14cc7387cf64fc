package dto

import "triveni_backend/internal/models"

// BlogRequest - создание статьи. Slug выводится из заголовка, если не задан.
type BlogRequest struct {
	Title         string               `json:"title"`
	Slug          string               `json:"slug"`
	Excerpt       string               `json:"excerpt"`
	Content       string               `json:"content"`
	FeaturedImage models.FeaturedImage `json:"featuredImage"`
	Author        models.Author        `json:"author"`
	Category      string               `json:"category"`
	Tags          []string             `json:"tags"`
	ReadingTime   int                  `json:"readingTime"`
	Featured      bool                 `json:"featured"`
	AllowComments *bool                `json:"allowComments"`
	Status        string               `json:"status"`
	PublishedAt   *string              `json:"publishedAt"`
	SEO           models.SEO           `json:"seo"`
}

type UpdateBlogRequest struct {
	Title         *string               `json:"title"`
	Slug          *string               `json:"slug"`
	Excerpt       *string               `json:"excerpt"`
	Content       *string               `json:"content"`
	FeaturedImage *models.FeaturedImage `json:"featuredImage"`
	Author        *models.Author        `json:"author"`
	Category      *string               `json:"category"`
	Tags          []string              `json:"tags"`
	ReadingTime   *int                  `json:"readingTime"`
	Featured      *bool                 `json:"featured"`
	AllowComments *bool                 `json:"allowComments"`
	Status        *string               `json:"status"`
	PublishedAt   *string               `json:"publishedAt"`
	SEO           *models.SEO           `json:"seo"`
}

// BlogDetail - статья по slug с числом одобренных комментариев.
type BlogDetail struct {
	models.Blog
	CommentsCount int64 `json:"commentsCount"`
}

// ImageUpload - результат загрузки картинки блога.
type ImageUpload struct {
	ImageURL string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}
