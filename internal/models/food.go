package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/vitaltrack/backend/internal/embedding"
	"github.com/pageza/vitaltrack/backend/internal/nutrition"
)

// EmbeddingDimensions is the width of Food.Embedding.
const EmbeddingDimensions = 32

// Food is a shared catalog entry with nutrition per 100g. NameKey is the
// normalized name and is unique across the catalog.
type Food struct {
	ID          uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	Name        string          `gorm:"size:120;not null" json:"name"`
	NameKey     string          `gorm:"size:120;not null;uniqueIndex" json:"-"`
	Category    string          `gorm:"size:40;not null" json:"category"`
	Calories    float64         `gorm:"not null" json:"calories"`
	ProteinG    float64         `gorm:"not null;default:0" json:"protein_g"`
	CarbsG      float64         `gorm:"not null;default:0" json:"carbs_g"`
	FatsG       float64         `gorm:"not null;default:0" json:"fats_g"`
	FiberG      float64         `gorm:"not null;default:0" json:"fiber_g"`
	ServingSize float64         `gorm:"not null;default:100" json:"serving_size"`
	CreatedBy   *uuid.UUID      `gorm:"type:varchar(36)" json:"created_by,omitempty"`
	Embedding   pgvector.Vector `gorm:"type:vector(32)" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Food) TableName() string { return "foods" }

func (f *Food) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.NameKey = FoodNameKey(f.Name)
	if len(f.Embedding.Slice()) == 0 {
		f.Embedding = embedding.Text(f.Name, EmbeddingDimensions)
	}
	return nil
}

// FoodNameKey normalizes a food name for uniqueness checks.
func FoodNameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Per100g returns the nutrition basis of the entry.
func (f *Food) Per100g() nutrition.Macros {
	return nutrition.Macros{
		Calories: f.Calories,
		ProteinG: f.ProteinG,
		CarbsG:   f.CarbsG,
		FatsG:    f.FatsG,
		FiberG:   f.FiberG,
	}
}
