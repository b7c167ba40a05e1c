package catalog

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/instadish/backend/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// StringList stores a string slice as a JSON text column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	return json.Unmarshal(raw, l)
}

// RecipeRecord is the recipes table row
type RecipeRecord struct {
	ID           int        `gorm:"primaryKey;autoIncrement:false"`
	Name         string     `gorm:"size:255;not null"`
	Ingredients  StringList `gorm:"type:text;not null"`
	Instructions StringList `gorm:"type:text;not null"`
	Category     string     `gorm:"size:64;index"`
	PrepTime     string     `gorm:"size:32"`
	CookTime     string     `gorm:"size:32"`
	Difficulty   string     `gorm:"size:16"`
}

// TableName pins the table name
func (RecipeRecord) TableName() string {
	return "recipes"
}

func toRecord(r domain.Recipe) RecipeRecord {
	return RecipeRecord{
		ID:           r.ID,
		Name:         r.Name,
		Ingredients:  StringList(r.Ingredients),
		Instructions: StringList(r.Instructions),
		Category:     r.Category,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Difficulty:   r.Difficulty,
	}
}

func (rec RecipeRecord) toDomain() domain.Recipe {
	return domain.Recipe{
		ID:           rec.ID,
		Name:         rec.Name,
		Ingredients:  []string(rec.Ingredients),
		Instructions: []string(rec.Instructions),
		Category:     rec.Category,
		PrepTime:     rec.PrepTime,
		CookTime:     rec.CookTime,
		Difficulty:   rec.Difficulty,
	}
}

// OpenDatabase opens a sqlite or postgres connection and migrates the recipes table
func OpenDatabase(driverName, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driverName {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driverName)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&RecipeRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate recipes table: %w", err)
	}
	return db, nil
}

// GormSource reads the catalog from the recipes table ordered by id
type GormSource struct {
	db *gorm.DB
}

// NewGormSource wraps an open database
func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

// LoadRecipes returns every row in id order
func (s *GormSource) LoadRecipes(ctx context.Context) ([]domain.Recipe, error) {
	var records []RecipeRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	recipes := make([]domain.Recipe, 0, len(records))
	for _, rec := range records {
		recipes = append(recipes, complete(rec.toDomain()))
	}
	return recipes, nil
}

// Seed upserts recipes by id and returns the number written
func Seed(ctx context.Context, db *gorm.DB, recipes []domain.Recipe) (int, error) {
	if len(recipes) == 0 {
		return 0, nil
	}

	records := make([]RecipeRecord, 0, len(recipes))
	for _, r := range recipes {
		records = append(records, toRecord(r))
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(records, 100).Error
	if err != nil {
		return 0, fmt.Errorf("failed to seed recipes: %w", err)
	}
	return len(records), nil
}
