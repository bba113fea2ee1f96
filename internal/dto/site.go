package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/autofix-digital/template-base/internal/model"
)

type CreateBlogPostRequest struct {
	Title      string   `json:"title" binding:"required,max=255"`
	Slug       string   `json:"slug" binding:"required,max=255"`
	Excerpt    string   `json:"excerpt" binding:"omitempty,max=512"`
	Content    string   `json:"content" binding:"required"`
	Category   string   `json:"category" binding:"omitempty,max=100"`
	Tags       []string `json:"tags" binding:"omitempty,dive,max=50"`
	CoverImage string   `json:"cover_image" binding:"omitempty,max=512"`
	Published  bool     `json:"published"`
}

type UpdateBlogPostRequest struct {
	Title      *string   `json:"title" binding:"omitempty,max=255"`
	Excerpt    *string   `json:"excerpt" binding:"omitempty,max=512"`
	Content    *string   `json:"content" binding:"omitempty"`
	Category   *string   `json:"category" binding:"omitempty,max=100"`
	Tags       *[]string `json:"tags" binding:"omitempty,dive,max=50"`
	CoverImage *string   `json:"cover_image" binding:"omitempty,max=512"`
	Published  *bool     `json:"published"`
}

type BlogPostFilter struct {
	Category  string
	Search    string
	Published *bool
}

type BlogPostResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Excerpt     string         `json:"excerpt,omitempty"`
	Content     string         `json:"content"`
	Category    string         `json:"category,omitempty"`
	Tags        datatypes.JSON `json:"tags,omitempty"`
	CoverImage  string         `json:"cover_image,omitempty"`
	Published   bool           `json:"published"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func ToBlogPostResponse(p *model.BlogPost) BlogPostResponse {
	return BlogPostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		Category:    p.Category,
		Tags:        p.Tags,
		CoverImage:  p.CoverImage,
		Published:   p.Published,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToBlogPostResponses(posts []model.BlogPost) []BlogPostResponse {
	out := make([]BlogPostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, ToBlogPostResponse(&posts[i]))
	}
	return out
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
	Subject string `json:"subject" binding:"omitempty,max=255"`
	Message string `json:"message" binding:"required,max=5000"`
}

type ContactMessageResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func ToContactMessageResponse(m *model.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Subject:   m.Subject,
		Message:   m.Message,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}
