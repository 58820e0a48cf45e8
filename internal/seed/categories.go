package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"tribuna/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed categories.yaml
var categoriesYAML []byte

// BuiltInCategory is a permanent platform category loaded from the bundled
// fixture file.
type BuiltInCategory struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
	Icon        string `yaml:"icon"`
}

var (
	builtInOnce       sync.Once
	builtInCategories []BuiltInCategory
	builtInErr        error
)

// BuiltInCategories returns the permanent categories defined in categories.yaml.
func BuiltInCategories() ([]BuiltInCategory, error) {
	builtInOnce.Do(func() {
		var doc struct {
			Categories []BuiltInCategory `yaml:"categories"`
		}
		if err := yaml.Unmarshal(categoriesYAML, &doc); err != nil {
			builtInErr = fmt.Errorf("parse categories fixture: %w", err)
			return
		}
		builtInCategories = doc.Categories
	})
	return builtInCategories, builtInErr
}

// Categories seeds the permanent platform categories. Re-running updates
// names and descriptions in place, keyed by slug.
func Categories(db *gorm.DB) error {
	items, err := BuiltInCategories()
	if err != nil {
		return err
	}

	for _, item := range items {
		category := models.Category{
			Name:        item.Name,
			Slug:        item.Slug,
			Description: item.Description,
			Color:       item.Color,
			Icon:        item.Icon,
			IsActive:    true,
		}

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "color", "icon", "is_active", "updated_at"}),
		}).Create(&category).Error
		if err != nil {
			return fmt.Errorf("seed built-in category %s: %w", item.Slug, err)
		}
	}

	return nil
}
