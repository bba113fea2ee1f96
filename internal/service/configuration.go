package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/autofix-digital/template-base/internal/constants"
	"github.com/autofix-digital/template-base/internal/dto"
	apperrors "github.com/autofix-digital/template-base/internal/errors"
	"github.com/autofix-digital/template-base/internal/model"
	"github.com/autofix-digital/template-base/internal/repository"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

var configKeyPattern = regexp.MustCompile(constants.ConfigKeyPattern)

// ConfigurationService manages the typed key/value settings store.
// Reads by key go through the redis cache; writes invalidate it.
type ConfigurationService struct {
	repo  *repository.ConfigurationRepository
	cache *ConfigCache
}

func NewConfigurationService(repo *repository.ConfigurationRepository, cache *ConfigCache) *ConfigurationService {
	return &ConfigurationService{repo: repo, cache: cache}
}

// ValidateValue checks a raw value against the declared type.
func ValidateValue(value string, cfgType model.ConfigType) error {
	switch cfgType {
	case model.ConfigTypeURL:
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return apperrors.ErrInvalidConfigValue
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return apperrors.ErrInvalidConfigValue
		}
	case model.ConfigTypeNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			return apperrors.ErrInvalidConfigValue
		}
	case model.ConfigTypeBoolean:
		if value != "true" && value != "false" {
			return apperrors.ErrInvalidConfigValue
		}
	case model.ConfigTypeJSON:
		if !json.Valid([]byte(value)) {
			return apperrors.ErrInvalidConfigValue
		}
	case model.ConfigTypeText:
		// any string is valid text
	default:
		return apperrors.ErrInvalidConfigValue
	}
	return nil
}

func (s *ConfigurationService) List(ctx context.Context) ([]dto.ConfigurationResponse, error) {
	configs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list configurations", err)
	}
	return dto.ToConfigurationResponses(configs), nil
}

func (s *ConfigurationService) GetByID(ctx context.Context, id uint) (*dto.ConfigurationResponse, error) {
	cfg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrConfigNotFound
		}
		return nil, apperrors.Internal("failed to load configuration", err)
	}
	resp := dto.ToConfigurationResponse(cfg)
	return &resp, nil
}

// GetByKey serves reads for application code. Cache hit avoids the
// database entirely.
func (s *ConfigurationService) GetByKey(ctx context.Context, key string) (*dto.ConfigurationResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByKey")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if cached, ok := s.cache.Get(ctx, key); ok {
		logger.DebugWithContext(ctx, "Configuration served from cache").
			String("key", key).
			Log()
		resp := dto.ToConfigurationResponse(cached)
		return &resp, nil
	}

	cfg, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrConfigNotFound
		}
		return nil, apperrors.Internal("failed to load configuration", err)
	}

	s.cache.Set(ctx, cfg)

	resp := dto.ToConfigurationResponse(cfg)
	return &resp, nil
}

func (s *ConfigurationService) Create(ctx context.Context, req *dto.CreateConfigurationRequest) (*dto.ConfigurationResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if !configKeyPattern.MatchString(req.Key) {
		return nil, apperrors.ErrInvalidInput
	}

	cfgType := model.ConfigType(req.Type)
	if err := ValidateValue(req.Value, cfgType); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByKey(ctx, req.Key)
	if err != nil {
		return nil, apperrors.Internal("failed to check existing key", err)
	}
	if count > 0 {
		return nil, apperrors.ErrConfigKeyExists
	}

	cfg := &model.Configuration{
		Key:         req.Key,
		Value:       req.Value,
		Type:        cfgType,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, cfg); err != nil {
		return nil, apperrors.Internal("failed to create configuration", err)
	}

	resp := dto.ToConfigurationResponse(cfg)
	return &resp, nil
}

// Update validates the value against the effective type, which may
// itself change in the same request.
func (s *ConfigurationService) Update(ctx context.Context, id uint, req *dto.UpdateConfigurationRequest) (*dto.ConfigurationResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	cfg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrConfigNotFound
		}
		return nil, apperrors.Internal("failed to load configuration", err)
	}

	effectiveType := cfg.Type
	if req.Type != nil {
		effectiveType = model.ConfigType(*req.Type)
	}
	effectiveValue := cfg.Value
	if req.Value != nil {
		effectiveValue = *req.Value
	}

	if err := ValidateValue(effectiveValue, effectiveType); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.Type != nil {
		updates["type"] = effectiveType
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, apperrors.Internal("failed to update configuration", err)
		}
		s.cache.Invalidate(ctx, cfg.Key)
	}

	return s.GetByID(ctx, id)
}

func (s *ConfigurationService) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	cfg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrConfigNotFound
		}
		return apperrors.Internal("failed to load configuration", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal("failed to delete configuration", err)
	}

	s.cache.Invalidate(ctx, cfg.Key)
	return nil
}
