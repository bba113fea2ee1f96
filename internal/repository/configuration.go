package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/autofix-digital/template-base/internal/model"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

type ConfigurationRepository struct {
	db *gorm.DB
}

func NewConfigurationRepository(db *gorm.DB) *ConfigurationRepository {
	return &ConfigurationRepository{db: db}
}

func (r *ConfigurationRepository) GetAll(ctx context.Context) ([]model.Configuration, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetAll")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var configs []model.Configuration
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&configs).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch configurations").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Configurations retrieved").
		Int("count", len(configs)).
		Duration(time.Since(start)).
		Log()

	return configs, nil
}

func (r *ConfigurationRepository) GetByID(ctx context.Context, id uint) (*model.Configuration, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var cfg model.Configuration
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&cfg)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get configuration by ID").
				Int("config_id", int(id)).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}
	return &cfg, nil
}

func (r *ConfigurationRepository) GetByKey(ctx context.Context, key string) (*model.Configuration, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByKey")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var cfg model.Configuration
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&cfg)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get configuration by key").
				String("key", key).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}
	return &cfg, nil
}

func (r *ConfigurationRepository) CountByKey(ctx context.Context, key string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Configuration{}).Where("key = ?", key).Count(&count).Error
	return count, err
}

func (r *ConfigurationRepository) Create(ctx context.Context, cfg *model.Configuration) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := r.db.WithContext(ctx).Create(cfg).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create configuration").
			String("key", cfg.Key).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Configuration created").
		String("key", cfg.Key).
		String("type", string(cfg.Type)).
		Log()

	return nil
}

func (r *ConfigurationRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&model.Configuration{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update configuration").
			Int("config_id", int(id)).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Configuration updated").
		Int("config_id", int(id)).
		Log()

	return nil
}

func (r *ConfigurationRepository) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	result := r.db.WithContext(ctx).Delete(&model.Configuration{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete configuration").
			Int("config_id", int(id)).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Configuration deleted").
		Int("config_id", int(id)).
		Log()

	return nil
}
