package storage

import "time"

// ActivityModel is the GORM model for the activities table
type ActivityModel struct {
	CreatedAt time.Time
	ID        string  `gorm:"primaryKey"`
	Name      string  `gorm:"not null;index:idx_activity_name"`
	ParentID  *string `gorm:"index:idx_activity_parent;default:null"`
	Position  int     `gorm:"not null;default:0;index:idx_activity_position"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (ActivityModel) TableName() string { return "activities" }

// HabitConfigModel is the GORM model for habit configuration
type HabitConfigModel struct {
	ActivityID   string `gorm:"primaryKey"`
	ConfiguredOn string `gorm:"not null"`
	CreatedAt    time.Time
	Goal         *float64 `gorm:"default:null"`
	Kind         string   `gorm:"not null;check:kind IN ('binary','percentage','numeric')"`
	Position     int      `gorm:"not null;default:0"`
	Unit         string   `gorm:"not null;default:''"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (HabitConfigModel) TableName() string { return "habit_configs" }

// TimeEntryModel is the GORM model for committed time entries
type TimeEntryModel struct {
	ActivityID string `gorm:"not null;index:idx_entry_activity"`
	CreatedAt  time.Time
	// DurationNS stores the duration in nanoseconds.
	DurationNS int64     `gorm:"not null"`
	ID         string    `gorm:"primaryKey"`
	Provenance string    `gorm:"not null;default:'manual';check:provenance IN ('manual','timer')"`
	StartedAt  time.Time `gorm:"not null;index:idx_entry_started"`
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (TimeEntryModel) TableName() string { return "time_entries" }

// HabitLogModel is the GORM model for per-day habit values
type HabitLogModel struct {
	ActivityID string `gorm:"primaryKey"`
	CreatedAt  time.Time
	Day        string  `gorm:"primaryKey"`
	UpdatedAt  time.Time
	Value      float64 `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (HabitLogModel) TableName() string { return "habit_logs" }
