package seed

import (
	"testing"

	"tribuna/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCategories_Idempotent(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&models.Category{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := Categories(db); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := Categories(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	builtIn, err := BuiltInCategories()
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	if len(builtIn) == 0 {
		t.Fatal("fixture defines no categories")
	}

	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if count != int64(len(builtIn)) {
		t.Fatalf("expected %d categories, got %d", len(builtIn), count)
	}

	for _, item := range builtIn {
		var c models.Category
		if err := db.Where("slug = ?", item.Slug).First(&c).Error; err != nil {
			t.Fatalf("missing category %s: %v", item.Slug, err)
		}
		if !c.IsActive {
			t.Fatalf("expected category %s to be active", item.Slug)
		}
		if c.Name != item.Name {
			t.Fatalf("category %s: expected name %q, got %q", item.Slug, item.Name, c.Name)
		}
	}
}

func TestCategories_RerunUpdatesInPlace(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := Categories(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// simulate a drifted row; re-seeding should restore the fixture values
	if err := db.Model(&models.Category{}).
		Where("slug = ?", "transparencia").
		Updates(map[string]interface{}{"name": "Renamed", "is_active": false}).Error; err != nil {
		t.Fatalf("drift row: %v", err)
	}

	if err := Categories(db); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	var c models.Category
	if err := db.Where("slug = ?", "transparencia").First(&c).Error; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if c.Name != "Transparencia" || !c.IsActive {
		t.Fatalf("expected fixture values restored, got name=%q active=%v", c.Name, c.IsActive)
	}
}
