package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/autofix-digital/template-base/internal/model"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get user by ID").
				Int("user_id", int(id)).
				Duration(duration).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully").
		Int("user_id", int(id)).
		String("email", user.Email).
		Duration(duration).
		Log()

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByEmail")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get user by email").
				String("email", email).
				Duration(duration).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully by email").
		String("email", email).
		Int("user_id", int(user.ID)).
		Duration(duration).
		Log()

	return &user, nil
}

func (r *UserRepository) GetAll(ctx context.Context, limit, offset int, search string) ([]model.User, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetAll")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, 0, err
	}

	start := time.Now()
	var users []model.User
	var total int64

	query := r.db.WithContext(ctx).Model(&model.User{})

	if search != "" {
		// lower() keeps the match case-insensitive across postgres and sqlite
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"lower(name) LIKE ? OR lower(email) LIKE ? OR lower(phone) LIKE ?",
			searchPattern, searchPattern, searchPattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count total users").
			Err(err).
			Log()
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch users").
			Int("limit", limit).
			Int("offset", offset).
			String("search", search).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.InfoWithContext(ctx, "Users retrieved successfully").
		Int("limit", limit).
		Int("offset", offset).
		String("search", search).
		Int64("total", total).
		Int("returned_count", len(users)).
		Duration(time.Since(start)).
		Log()

	return users, total, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", user.Email).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "User created successfully").
		String("email", user.Email).
		Int("user_id", int(user.ID)).
		Duration(duration).
		Log()

	return nil
}

// Update applies a partial update built by the service layer.
func (r *UserRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if len(updates) == 0 {
		return nil
	}

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update user").
			Int("user_id", int(id)).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No user found to update").
			Int("user_id", int(id)).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User updated successfully").
		Int("user_id", int(id)).
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdatePassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hashedPassword)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update user password").
			Int("user_id", int(id)).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User password updated successfully").
		Int("user_id", int(id)).
		Duration(duration).
		Log()

	return nil
}

func (r *UserRepository) CountByEmail(ctx context.Context, email string, excludeID uint) (int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "CountByEmail")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var count int64
	query := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count users by email").
			String("email", email).
			Err(err).
			Log()
		return 0, err
	}
	return count, nil
}

// Delete removes the user row permanently, freeing the email for a
// future account.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Delete(&model.User{}, id)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete user").
			Int("user_id", int(id)).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No user found to delete").
			Int("user_id", int(id)).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User deleted successfully").
		Int("user_id", int(id)).
		Duration(duration).
		Log()

	return nil
}
