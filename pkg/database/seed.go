package database

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/autofix-digital/template-base/internal/model"
)

const seedPasswordCost = 12

// Seed inserts the default accounts, configurations and sample content.
// Every insert is idempotent so Seed can run on each startup.
func Seed(db *gorm.DB) error {
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedConfigurations(db); err != nil {
		return err
	}
	return seedBlogPosts(db)
}

func seedUsers(db *gorm.DB) error {
	users := []struct {
		name     string
		email    string
		password string
		role     model.Role
	}{
		{"Administrator", "admin@template.com", "admin123", model.RoleAdmin},
		{"Client User", "client@template.com", "client123", model.RoleClient},
	}

	for _, u := range users {
		var count int64
		if err := db.Model(&model.User{}).Where("email = ?", u.email).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check seed user %s: %w", u.email, err)
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), seedPasswordCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		user := model.User{
			Name:     u.name,
			Email:    u.email,
			Password: string(hash),
			Role:     u.role,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create seed user %s: %w", u.email, err)
		}
	}
	return nil
}

func seedConfigurations(db *gorm.DB) error {
	configs := []model.Configuration{
		{Key: "app_name", Value: "Template Base", Type: model.ConfigTypeText, Description: "Application display name"},
		{Key: "webhook_url", Value: "https://n8n.example.com/webhook/notifications", Type: model.ConfigTypeURL, Description: "Notification webhook endpoint"},
		{Key: "max_users", Value: "100", Type: model.ConfigTypeNumber, Description: "Maximum number of registered users"},
		{Key: "enable_notifications", Value: "true", Type: model.ConfigTypeBoolean, Description: "Toggle outbound notifications"},
		{Key: "theme_config", Value: `{"primaryColor":"#1976d2","darkMode":false}`, Type: model.ConfigTypeJSON, Description: "Frontend theme settings"},
	}

	for _, c := range configs {
		var count int64
		if err := db.Model(&model.Configuration{}).Where("key = ?", c.Key).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check seed configuration %s: %w", c.Key, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&c).Error; err != nil {
			return fmt.Errorf("failed to create seed configuration %s: %w", c.Key, err)
		}
	}
	return nil
}

func seedBlogPosts(db *gorm.DB) error {
	var admin model.User
	if err := db.Where("email = ?", "admin@template.com").First(&admin).Error; err != nil {
		return fmt.Errorf("failed to load seed author: %w", err)
	}

	posts := []model.BlogPost{
		{
			Title:     "5 Signs Your Brakes Need Attention",
			Slug:      "5-signs-your-brakes-need-attention",
			Excerpt:   "Squealing, grinding or a soft pedal? Here is what your car is telling you.",
			Content:   "Brakes rarely fail without warning. In this post we walk through the five most common symptoms our technicians see, from worn pads to air in the lines, and what each one means for your next visit.",
			Category:  "maintenance",
			Tags:      datatypes.JSON([]byte(`["brakes","safety","maintenance"]`)),
			Published: true,
			AuthorID:  admin.ID,
		},
		{
			Title:     "How Often Should You Really Change Your Oil?",
			Slug:      "how-often-should-you-change-your-oil",
			Excerpt:   "The 3,000 mile rule is outdated. Modern engines and synthetic oils changed the math.",
			Content:   "Most modern vehicles running synthetic oil are fine with 7,500 to 10,000 mile intervals. We explain how to read your owner's manual, when severe-duty schedules apply, and why skipping changes costs far more than the service.",
			Category:  "maintenance",
			Tags:      datatypes.JSON([]byte(`["oil","engine"]`)),
			Published: true,
			AuthorID:  admin.ID,
		},
	}

	for i := range posts {
		var count int64
		if err := db.Model(&model.BlogPost{}).Where("slug = ?", posts[i].Slug).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check seed post %s: %w", posts[i].Slug, err)
		}
		if count > 0 {
			continue
		}
		now := db.NowFunc()
		posts[i].PublishedAt = &now
		if err := db.Create(&posts[i]).Error; err != nil {
			return fmt.Errorf("failed to create seed post %s: %w", posts[i].Slug, err)
		}
	}
	return nil
}
