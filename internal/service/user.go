package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/autofix-digital/template-base/internal/dto"
	apperrors "github.com/autofix-digital/template-base/internal/errors"
	"github.com/autofix-digital/template-base/internal/model"
	"github.com/autofix-digital/template-base/internal/repository"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

// UserService is the admin-facing user management surface.
type UserService struct {
	repo        *repository.UserRepository
	refreshRepo RefreshTokenStore
	tokens      *TokenService
}

func NewUserService(repo *repository.UserRepository, refreshRepo RefreshTokenStore, tokens *TokenService) *UserService {
	return &UserService{
		repo:        repo,
		refreshRepo: refreshRepo,
		tokens:      tokens,
	}
}

func (s *UserService) List(ctx context.Context, limit, offset int, search string) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.GetAll(ctx, limit, offset, search)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list users", err)
	}
	return dto.ToUserResponses(users), total, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal("failed to load user", err)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	count, err := s.repo.CountByEmail(ctx, req.Email, 0)
	if err != nil {
		return nil, apperrors.Internal("failed to check existing email", err)
	}
	if count > 0 {
		return nil, apperrors.ErrEmailExists
	}

	hash, err := s.tokens.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	role := model.RoleClient
	if req.Role != "" {
		role = model.Role(req.Role)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		Role:     role,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to create user", err)
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal("failed to load user", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		count, err := s.repo.CountByEmail(ctx, *req.Email, id)
		if err != nil {
			return nil, apperrors.Internal("failed to check existing email", err)
		}
		if count > 0 {
			return nil, apperrors.ErrEmailExists
		}
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		hash, err := s.tokens.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.Internal("failed to hash password", err)
		}
		updates["password"] = hash
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}
	if req.Role != nil {
		updates["role"] = model.Role(*req.Role)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, apperrors.Internal("failed to update user", err)
		}
	}

	return s.GetByID(ctx, id)
}

// Delete removes a user. Admins cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, id, actorID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if id == actorID {
		return apperrors.ErrSelfAction
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Internal("failed to delete user", err)
	}

	// dead accounts keep no sessions
	if _, err := s.refreshRepo.DeleteByUser(ctx, id); err != nil {
		return apperrors.Internal("failed to revoke sessions", err)
	}

	return nil
}

// ToggleActive flips the is_active flag. Deactivation revokes every
// session the user holds. Admins cannot deactivate themselves.
func (s *UserService) ToggleActive(ctx context.Context, id, actorID uint) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ToggleActive")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if id == actorID {
		return nil, apperrors.ErrSelfAction
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal("failed to load user", err)
	}

	newState := !user.IsActive
	if err := s.repo.Update(ctx, id, map[string]interface{}{"is_active": newState}); err != nil {
		return nil, apperrors.Internal("failed to toggle user status", err)
	}

	if !newState {
		if _, err := s.refreshRepo.DeleteByUser(ctx, id); err != nil {
			return nil, apperrors.Internal("failed to revoke sessions", err)
		}
	}

	logger.InfoWithContext(ctx, "User status toggled").
		Int("user_id", int(id)).
		Bool("is_active", newState).
		Log()

	return s.GetByID(ctx, id)
}
