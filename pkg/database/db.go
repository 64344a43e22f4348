package database

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/talkoren/shift-template-api/pkg/models"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	KeyID            uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date             string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount     int    `gorm:"default:0" json:"request_count"`
	TotalValidations int    `gorm:"default:0" json:"total_validations"`
	TotalSuggestions int    `gorm:"default:0" json:"total_suggestions"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// TemplateRecord represents the job_templates table. Day and slot sets
// are stored pipe-separated; an allowed_days value of "-" marks a set
// that is present but empty, since an empty column means no restriction.
type TemplateRecord struct {
	ID                   string    `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"not null" json:"name"`
	MaxShiftsPerWeek     int       `json:"max_shifts_per_week"`
	MaxHoursPerShift     float64   `json:"max_hours_per_shift"`
	MinHoursPerShift     float64   `json:"min_hours_per_shift"`
	WeeklyHoursLimit     float64   `json:"weekly_hours_limit"`
	AllowedDays          string    `json:"allowed_days"`
	ForbiddenDays        string    `json:"forbidden_days"`
	IsFlexible           bool      `json:"is_flexible"`
	MaxConsecutiveDays   int       `json:"max_consecutive_days"`
	MinRestBetweenShifts float64   `json:"min_rest_between_shifts"`
	CanWorkWeekends      bool      `json:"can_work_weekends"`
	CanWorkNights        bool      `json:"can_work_nights"`
	PreferredTimeSlots   string    `json:"preferred_time_slots"`
	CanWorkOvertime      bool      `json:"can_work_overtime"`
	IsActive             bool      `gorm:"default:true" json:"is_active"`
	IsDefault            bool      `gorm:"default:false" json:"is_default"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName pins the table name to the domain term
func (TemplateRecord) TableName() string { return "job_templates" }

const emptySetMarker = "-"

// ToModel converts a stored record into the domain template
func (r *TemplateRecord) ToModel() models.JobTemplate {
	return models.JobTemplate{
		ID:                   r.ID,
		Name:                 r.Name,
		MaxShiftsPerWeek:     r.MaxShiftsPerWeek,
		MaxHoursPerShift:     r.MaxHoursPerShift,
		MinHoursPerShift:     r.MinHoursPerShift,
		WeeklyHoursLimit:     r.WeeklyHoursLimit,
		AllowedDays:          decodeSet(r.AllowedDays),
		ForbiddenDays:        decodeSet(r.ForbiddenDays),
		IsFlexible:           r.IsFlexible,
		MaxConsecutiveDays:   r.MaxConsecutiveDays,
		MinRestBetweenShifts: r.MinRestBetweenShifts,
		CanWorkWeekends:      r.CanWorkWeekends,
		CanWorkNights:        r.CanWorkNights,
		PreferredTimeSlots:   decodeSet(r.PreferredTimeSlots),
		CanWorkOvertime:      r.CanWorkOvertime,
		IsActive:             r.IsActive,
		IsDefault:            r.IsDefault,
	}
}

// RecordFromModel converts a domain template into its stored form
func RecordFromModel(t models.JobTemplate) TemplateRecord {
	return TemplateRecord{
		ID:                   t.ID,
		Name:                 t.Name,
		MaxShiftsPerWeek:     t.MaxShiftsPerWeek,
		MaxHoursPerShift:     t.MaxHoursPerShift,
		MinHoursPerShift:     t.MinHoursPerShift,
		WeeklyHoursLimit:     t.WeeklyHoursLimit,
		AllowedDays:          encodeSet(t.AllowedDays),
		ForbiddenDays:        encodeSet(t.ForbiddenDays),
		IsFlexible:           t.IsFlexible,
		MaxConsecutiveDays:   t.MaxConsecutiveDays,
		MinRestBetweenShifts: t.MinRestBetweenShifts,
		CanWorkWeekends:      t.CanWorkWeekends,
		CanWorkNights:        t.CanWorkNights,
		PreferredTimeSlots:   encodeSet(t.PreferredTimeSlots),
		CanWorkOvertime:      t.CanWorkOvertime,
		IsActive:             t.IsActive,
		IsDefault:            t.IsDefault,
	}
}

func encodeSet(items []string) string {
	if items == nil {
		return ""
	}
	if len(items) == 0 {
		return emptySetMarker
	}
	return strings.Join(items, "|")
}

func decodeSet(encoded string) []string {
	if encoded == "" {
		return nil
	}
	if encoded == emptySetMarker {
		return []string{}
	}
	return strings.Split(encoded, "|")
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "templates.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	// Auto Migration
	db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &TemplateRecord{})

	return db
}

// SeedDefaultTemplates inserts the built-in templates when the table is
// empty so a fresh deployment has something to validate against.
func SeedDefaultTemplates(db *gorm.DB) error {
	var count int64
	db.Model(&TemplateRecord{}).Count(&count)
	if count > 0 {
		return nil
	}

	defaults := []models.JobTemplate{
		{
			ID:                   "tpl-full-time",
			Name:                 "Full Time",
			MaxShiftsPerWeek:     5,
			MaxHoursPerShift:     9,
			MinHoursPerShift:     6,
			WeeklyHoursLimit:     42,
			AllowedDays:          []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"},
			MaxConsecutiveDays:   5,
			MinRestBetweenShifts: 8,
			CanWorkWeekends:      false,
			CanWorkNights:        false,
			PreferredTimeSlots:   []string{"morning", "afternoon"},
			CanWorkOvertime:      true,
			IsActive:             true,
			IsDefault:            true,
		},
		{
			ID:                   "tpl-student-flexible",
			Name:                 "Student Flexible",
			MaxShiftsPerWeek:     4,
			MaxHoursPerShift:     8,
			MinHoursPerShift:     4,
			WeeklyHoursLimit:     24,
			AllowedDays:          []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"},
			IsFlexible:           true,
			MaxConsecutiveDays:   3,
			MinRestBetweenShifts: 10,
			CanWorkWeekends:      false,
			CanWorkNights:        false,
			PreferredTimeSlots:   []string{"afternoon", "evening"},
			IsActive:             true,
		},
		{
			ID:                   "tpl-night-crew",
			Name:                 "Night Crew",
			MaxShiftsPerWeek:     5,
			MaxHoursPerShift:     8,
			MinHoursPerShift:     8,
			WeeklyHoursLimit:     40,
			ForbiddenDays:        []string{"Friday"},
			MaxConsecutiveDays:   4,
			MinRestBetweenShifts: 12,
			CanWorkWeekends:      true,
			CanWorkNights:        true,
			PreferredTimeSlots:   []string{"night"},
			IsActive:             true,
		},
	}

	for _, tpl := range defaults {
		record := RecordFromModel(tpl)
		if err := db.Create(&record).Error; err != nil {
			return err
		}
	}
	logrus.Infof("Seeded %d default job templates", len(defaults))
	return nil
}

// LoadActiveTemplates returns all active templates as domain objects
func LoadActiveTemplates(db *gorm.DB) ([]models.JobTemplate, error) {
	var records []TemplateRecord
	if err := db.Where("is_active = ?", true).Find(&records).Error; err != nil {
		return nil, err
	}

	templates := make([]models.JobTemplate, 0, len(records))
	for i := range records {
		templates = append(templates, records[i].ToModel())
	}
	return templates, nil
}
