package dto

import (
	"time"

	"github.com/autofix-digital/template-base/internal/model"
)

type CreateConfigurationRequest struct {
	Key         string `json:"key" binding:"required,max=100"`
	Value       string `json:"value" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=URL TEXT NUMBER BOOLEAN JSON"`
	Description string `json:"description" binding:"omitempty,max=512"`
}

type UpdateConfigurationRequest struct {
	Value       *string `json:"value" binding:"omitempty"`
	Type        *string `json:"type" binding:"omitempty,oneof=URL TEXT NUMBER BOOLEAN JSON"`
	Description *string `json:"description" binding:"omitempty,max=512"`
}

type ConfigurationResponse struct {
	ID          uint             `json:"id"`
	Key         string           `json:"key"`
	Value       string           `json:"value"`
	Type        model.ConfigType `json:"type"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func ToConfigurationResponse(c *model.Configuration) ConfigurationResponse {
	return ConfigurationResponse{
		ID:          c.ID,
		Key:         c.Key,
		Value:       c.Value,
		Type:        c.Type,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToConfigurationResponses(configs []model.Configuration) []ConfigurationResponse {
	out := make([]ConfigurationResponse, 0, len(configs))
	for i := range configs {
		out = append(out, ToConfigurationResponse(&configs[i]))
	}
	return out
}
