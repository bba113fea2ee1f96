package service

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/autofix-digital/template-base/internal/dto"
	apperrors "github.com/autofix-digital/template-base/internal/errors"
	"github.com/autofix-digital/template-base/internal/model"
	"github.com/autofix-digital/template-base/internal/repository"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

// SiteService serves the public marketing site: blog posts and the
// contact form.
type SiteService struct {
	posts    *repository.BlogPostRepository
	contacts *repository.ContactMessageRepository
}

func NewSiteService(posts *repository.BlogPostRepository, contacts *repository.ContactMessageRepository) *SiteService {
	return &SiteService{posts: posts, contacts: contacts}
}

// ListPosts returns published posts for the public site. Admin callers
// pass a nil Published filter to see drafts too.
func (s *SiteService) ListPosts(ctx context.Context, limit, offset int, filter dto.BlogPostFilter) ([]dto.BlogPostResponse, int64, error) {
	posts, total, err := s.posts.GetAll(ctx, limit, offset, filter)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list blog posts", err)
	}
	return dto.ToBlogPostResponses(posts), total, nil
}

func (s *SiteService) GetPostBySlug(ctx context.Context, slug string, includeDrafts bool) (*dto.BlogPostResponse, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.Internal("failed to load blog post", err)
	}
	if !post.Published && !includeDrafts {
		return nil, apperrors.ErrPostNotFound
	}
	resp := dto.ToBlogPostResponse(post)
	return &resp, nil
}

func (s *SiteService) CreatePost(ctx context.Context, authorID uint, req *dto.CreateBlogPostRequest) (*dto.BlogPostResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "CreatePost")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	count, err := s.posts.CountBySlug(ctx, req.Slug)
	if err != nil {
		return nil, apperrors.Internal("failed to check existing slug", err)
	}
	if count > 0 {
		return nil, apperrors.ErrInvalidInput
	}

	tags, err := marshalTags(req.Tags)
	if err != nil {
		return nil, apperrors.Internal("failed to encode tags", err)
	}

	post := &model.BlogPost{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		Category:   req.Category,
		Tags:       tags,
		CoverImage: req.CoverImage,
		Published:  req.Published,
		AuthorID:   authorID,
	}
	if req.Published {
		now := timeNow()
		post.PublishedAt = &now
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.Internal("failed to create blog post", err)
	}

	resp := dto.ToBlogPostResponse(post)
	return &resp, nil
}

func (s *SiteService) UpdatePost(ctx context.Context, id uint, req *dto.UpdateBlogPostRequest) (*dto.BlogPostResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdatePost")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.Internal("failed to load blog post", err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		tags, err := marshalTags(*req.Tags)
		if err != nil {
			return nil, apperrors.Internal("failed to encode tags", err)
		}
		updates["tags"] = tags
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}
	if req.Published != nil {
		updates["published"] = *req.Published
		if *req.Published && post.PublishedAt == nil {
			now := timeNow()
			updates["published_at"] = &now
		}
	}

	if len(updates) > 0 {
		if err := s.posts.Update(ctx, id, updates); err != nil {
			return nil, apperrors.Internal("failed to update blog post", err)
		}
	}

	updated, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to reload blog post", err)
	}
	resp := dto.ToBlogPostResponse(updated)
	return &resp, nil
}

func (s *SiteService) DeletePost(ctx context.Context, id uint) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPostNotFound
		}
		return apperrors.Internal("failed to delete blog post", err)
	}
	return nil
}

// SubmitContact stores a contact form submission.
func (s *SiteService) SubmitContact(ctx context.Context, req *dto.ContactRequest) (*dto.ContactMessageResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "SubmitContact")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, apperrors.Internal("failed to store contact message", err)
	}

	logger.InfoWithContext(ctx, "Contact form submitted").
		String("email", req.Email).
		Log()

	resp := dto.ToContactMessageResponse(msg)
	return &resp, nil
}

func (s *SiteService) ListContactMessages(ctx context.Context, limit, offset int) ([]dto.ContactMessageResponse, int64, error) {
	messages, total, err := s.contacts.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list contact messages", err)
	}
	out := make([]dto.ContactMessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, dto.ToContactMessageResponse(&messages[i]))
	}
	return out, total, nil
}

func (s *SiteService) MarkContactRead(ctx context.Context, id uint) error {
	if err := s.contacts.MarkRead(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMessageNotFound
		}
		return apperrors.Internal("failed to mark contact message read", err)
	}
	return nil
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
