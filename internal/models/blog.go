package models

import (
	"time"

	"gorm.io/datatypes"
)

type FeaturedImage struct {
	URL     string `gorm:"size:500" json:"url"`
	Alt     string `gorm:"size:255" json:"alt"`
	Caption string `gorm:"size:500" json:"caption"`
}

type Author struct {
	Name   string `gorm:"size:100;not null" json:"name" validate:"required"`
	Email  string `gorm:"size:255" json:"email,omitempty" validate:"omitempty,email"`
	Bio    string `gorm:"type:text" json:"bio"`
	Avatar string `gorm:"size:500" json:"avatar"`
}

type SEO struct {
	MetaTitle       string                      `gorm:"size:255" json:"metaTitle,omitempty"`
	MetaDescription string                      `gorm:"size:500" json:"metaDescription,omitempty"`
	Keywords        datatypes.JSONSlice[string] `json:"keywords,omitempty"`
}

// Blog - статья. Счетчики views/likes/shares/comments меняются только атомарными UPDATE.
type Blog struct {
	BaseModel
	Title         string                      `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Slug          string                      `gorm:"size:255;not null;uniqueIndex" json:"slug" validate:"required"`
	Excerpt       string                      `gorm:"size:300;not null" json:"excerpt" validate:"required,max=300"`
	Content       string                      `gorm:"type:text;not null" json:"content,omitempty" validate:"required"`
	FeaturedImage FeaturedImage               `gorm:"embedded;embeddedPrefix:featured_image_" json:"featuredImage"`
	Author        Author                      `gorm:"embedded;embeddedPrefix:author_" json:"author"`
	Category      BlogCategory                `gorm:"type:varchar(50);not null;index" json:"category" validate:"required,is-blog-category"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	ReadingTime   int                         `gorm:"not null" json:"readingTime" validate:"min=1"`
	Views         int                         `gorm:"not null;index" json:"views"`
	Likes         int                         `gorm:"not null" json:"likes"`
	Shares        int                         `gorm:"not null" json:"shares"`
	Comments      int                         `gorm:"not null" json:"comments"`
	Featured      bool                        `gorm:"not null" json:"featured"`
	AllowComments bool                        `gorm:"not null" json:"allowComments"`
	Status        BlogStatus                  `gorm:"type:varchar(20);not null;index" json:"status" validate:"required,is-blog-status"`
	PublishedAt   time.Time                   `gorm:"index" json:"publishedAt"`
	SEO           SEO                         `gorm:"embedded;embeddedPrefix:seo_" json:"seo"`
}

func (b *Blog) IsPublished() bool {
	return b.Status == BlogStatusPublished
}

// SharesTag сообщает, есть ли у статей хотя бы один общий тег.
func (b *Blog) SharesTag(tags []string) bool {
	for _, own := range b.Tags {
		for _, t := range tags {
			if own == t {
				return true
			}
		}
	}
	return false
}
