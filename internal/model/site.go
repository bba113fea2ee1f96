package model

import (
	"time"

	"gorm.io/datatypes"
)

// BlogPost backs the public marketing blog. Deletes are permanent so
// the slug can be reused.
type BlogPost struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Slug        string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt     string         `gorm:"size:512" json:"excerpt,omitempty"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Category    string         `gorm:"size:100;index" json:"category,omitempty"`
	Tags        datatypes.JSON `json:"tags,omitempty"`
	CoverImage  string         `gorm:"size:512" json:"cover_image,omitempty"`
	Published   bool           `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	AuthorID    uint           `gorm:"index" json:"author_id"`
	Author      User           `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// ContactMessage stores submissions from the public contact form.
type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Subject   string    `gorm:"size:255" json:"subject,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
