package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/autofix-digital/template-base/internal/dto"
	"github.com/autofix-digital/template-base/internal/model"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

// BlogPostRepository backs the public blog and its admin surface.
type BlogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) *BlogPostRepository {
	return &BlogPostRepository{db: db}
}

func (r *BlogPostRepository) GetAll(ctx context.Context, limit, offset int, filter dto.BlogPostFilter) ([]model.BlogPost, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetAll")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var posts []model.BlogPost
	var total int64

	query := r.db.WithContext(ctx).Model(&model.BlogPost{})

	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("lower(title) LIKE ? OR lower(excerpt) LIKE ? OR lower(content) LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count blog posts").
			Err(err).
			Log()
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch blog posts").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.DebugWithContext(ctx, "Blog posts retrieved").
		Int64("total", total).
		Int("returned_count", len(posts)).
		Duration(time.Since(start)).
		Log()

	return posts, total, nil
}

func (r *BlogPostRepository) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetBySlug")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var post model.BlogPost
	result := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get blog post by slug").
				String("slug", slug).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}
	return &post, nil
}

func (r *BlogPostRepository) GetByID(ctx context.Context, id uint) (*model.BlogPost, error) {
	var post model.BlogPost
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&post)
	if result.Error != nil {
		return nil, result.Error
	}
	return &post, nil
}

func (r *BlogPostRepository) CountBySlug(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BlogPost{}).Where("slug = ?", slug).Count(&count).Error
	return count, err
}

func (r *BlogPostRepository) Create(ctx context.Context, post *model.BlogPost) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create blog post").
			String("slug", post.Slug).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Blog post created").
		String("slug", post.Slug).
		Bool("published", post.Published).
		Log()

	return nil
}

func (r *BlogPostRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&model.BlogPost{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update blog post").
			Int("post_id", int(id)).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BlogPostRepository) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	result := r.db.WithContext(ctx).Delete(&model.BlogPost{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete blog post").
			Int("post_id", int(id)).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ContactMessageRepository stores contact form submissions.
type ContactMessageRepository struct {
	db *gorm.DB
}

func NewContactMessageRepository(db *gorm.DB) *ContactMessageRepository {
	return &ContactMessageRepository{db: db}
}

func (r *ContactMessageRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to store contact message").
			String("email", msg.Email).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Contact message stored").
		String("email", msg.Email).
		Log()

	return nil
}

func (r *ContactMessageRepository) GetAll(ctx context.Context, limit, offset int) ([]model.ContactMessage, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetAll")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var messages []model.ContactMessage
	var total int64

	query := r.db.WithContext(ctx).Model(&model.ContactMessage{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&messages).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch contact messages").
			Err(err).
			Log()
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *ContactMessageRepository) MarkRead(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.ContactMessage{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
