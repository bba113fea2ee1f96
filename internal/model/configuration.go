package model

import "time"

// ConfigType constrains how a configuration value is validated.
type ConfigType string

const (
	ConfigTypeURL     ConfigType = "URL"
	ConfigTypeText    ConfigType = "TEXT"
	ConfigTypeNumber  ConfigType = "NUMBER"
	ConfigTypeBoolean ConfigType = "BOOLEAN"
	ConfigTypeJSON    ConfigType = "JSON"
)

func (t ConfigType) Valid() bool {
	switch t {
	case ConfigTypeURL, ConfigTypeText, ConfigTypeNumber, ConfigTypeBoolean, ConfigTypeJSON:
		return true
	}
	return false
}

// Configuration is a typed key/value setting editable at runtime.
type Configuration struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Key         string     `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value       string     `gorm:"type:text;not null" json:"value"`
	Type        ConfigType `gorm:"size:20;not null;default:TEXT" json:"type"`
	Description string     `gorm:"size:512" json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Configuration) TableName() string {
	return "configurations"
}
