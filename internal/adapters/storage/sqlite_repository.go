package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stint/internal/domain"
	"stint/internal/logging"
	"stint/internal/ports"
)

// SQLiteRepository implements ports.TimeStore using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.TimeStore = (*SQLiteRepository)(nil)

// gormLogger wraps the stint logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("STINT_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository creates a new SQLiteRepository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	// Auto-migrate the activities table
	if err := db.AutoMigrate(&ActivityModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate activities schema: %w", err)
		}
	}

	// Manually create dependent tables so the foreign keys cascade
	migrator := db.Migrator()

	if !migrator.HasTable(&HabitConfigModel{}) {
		if err := db.Exec(`
			CREATE TABLE IF NOT EXISTS habit_configs (
				activity_id TEXT PRIMARY KEY,
				kind TEXT NOT NULL CHECK (kind IN ('binary','percentage','numeric')),
				unit TEXT NOT NULL DEFAULT '',
				goal REAL,
				configured_on TEXT NOT NULL,
				position INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME,
				updated_at DATETIME,
				FOREIGN KEY (activity_id) REFERENCES activities(id) ON UPDATE CASCADE ON DELETE CASCADE
			)
		`).Error; err != nil {
			return nil, fmt.Errorf("failed to create habit_configs table: %w", err)
		}
	}

	if !migrator.HasTable(&TimeEntryModel{}) {
		if err := db.Exec(`
			CREATE TABLE IF NOT EXISTS time_entries (
				id TEXT PRIMARY KEY,
				activity_id TEXT NOT NULL,
				started_at DATETIME NOT NULL,
				duration_ns INTEGER NOT NULL,
				provenance TEXT NOT NULL DEFAULT 'manual' CHECK (provenance IN ('manual','timer')),
				created_at DATETIME,
				updated_at DATETIME,
				FOREIGN KEY (activity_id) REFERENCES activities(id) ON UPDATE CASCADE ON DELETE CASCADE
			)
		`).Error; err != nil {
			return nil, fmt.Errorf("failed to create time_entries table: %w", err)
		}
		db.Exec("CREATE INDEX IF NOT EXISTS idx_entry_activity ON time_entries(activity_id)")
		db.Exec("CREATE INDEX IF NOT EXISTS idx_entry_started ON time_entries(started_at)")
	}

	if !migrator.HasTable(&HabitLogModel{}) {
		if err := db.Exec(`
			CREATE TABLE IF NOT EXISTS habit_logs (
				activity_id TEXT NOT NULL,
				day TEXT NOT NULL,
				value REAL NOT NULL DEFAULT 0,
				created_at DATETIME,
				updated_at DATETIME,
				PRIMARY KEY (activity_id, day),
				FOREIGN KEY (activity_id) REFERENCES activities(id) ON UPDATE CASCADE ON DELETE CASCADE
			)
		`).Error; err != nil {
			return nil, fmt.Errorf("failed to create habit_logs table: %w", err)
		}
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetActivity implements ports.ActivityReader.GetActivity
func (r *SQLiteRepository) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	var model ActivityModel
	var habit *HabitConfigModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
				return err
			}
			var cfg HabitConfigModel
			switch err := tx.Where("activity_id = ?", id).First(&cfg).Error; {
			case err == nil:
				habit = &cfg
			case errors.Is(err, gorm.ErrRecordNotFound):
			default:
				return err
			}
			return nil
		})
	}, 3)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("activity %s: %w", id, domain.ErrActivityNotFound)
	}
	if err != nil {
		return nil, err
	}

	activity := activityModelToDomain(model, habit)
	return &activity, nil
}

// GetActivityByName implements ports.ActivityReader.GetActivityByName
func (r *SQLiteRepository) GetActivityByName(ctx context.Context, name string) (*domain.Activity, error) {
	var models []ActivityModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("name = ?", name).Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}
	switch len(models) {
	case 0:
		return nil, fmt.Errorf("activity %q: %w", name, domain.ErrActivityNotFound)
	case 1:
		return r.GetActivity(ctx, models[0].ID)
	default:
		return nil, fmt.Errorf("activity name %q is ambiguous (%d matches), use the id", name, len(models))
	}
}

// ListActivities implements ports.ActivityReader.ListActivities
func (r *SQLiteRepository) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	var models []ActivityModel
	var configs []HabitConfigModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Order("parent_id, position").Find(&models).Error; err != nil {
				return err
			}
			return tx.Find(&configs).Error
		})
	}, 3)
	if err != nil {
		return nil, err
	}

	habitByActivity := make(map[string]*HabitConfigModel, len(configs))
	for i := range configs {
		habitByActivity[configs[i].ActivityID] = &configs[i]
	}

	activities := make([]domain.Activity, 0, len(models))
	for _, m := range models {
		activities = append(activities, activityModelToDomain(m, habitByActivity[m.ID]))
	}
	return activities, nil
}

// ListHabits implements ports.ActivityReader.ListHabits
func (r *SQLiteRepository) ListHabits(ctx context.Context) ([]domain.Activity, error) {
	var configs []HabitConfigModel
	var models []ActivityModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Order("position").Find(&configs).Error; err != nil {
				return err
			}
			if len(configs) == 0 {
				return nil
			}
			ids := make([]string, 0, len(configs))
			for _, cfg := range configs {
				ids = append(ids, cfg.ActivityID)
			}
			return tx.Where("id IN ?", ids).Find(&models).Error
		})
	}, 3)
	if err != nil {
		return nil, err
	}

	modelByID := make(map[string]ActivityModel, len(models))
	for _, m := range models {
		modelByID[m.ID] = m
	}

	habits := make([]domain.Activity, 0, len(configs))
	for i := range configs {
		m, ok := modelByID[configs[i].ActivityID]
		if !ok {
			continue
		}
		habits = append(habits, activityModelToDomain(m, &configs[i]))
	}
	return habits, nil
}

// CreateActivity implements ports.ActivityWriter.CreateActivity
func (r *SQLiteRepository) CreateActivity(ctx context.Context, name string, parentID *string) (*domain.Activity, error) {
	model := ActivityModel{
		ID:       uuid.New().String(),
		Name:     name,
		ParentID: parentID,
	}

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if parentID != nil {
				var parent ActivityModel
				if err := tx.Where("id = ?", *parentID).First(&parent).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("parent %s: %w", *parentID, domain.ErrActivityNotFound)
					}
					return err
				}
			}
			if err := siblingNameTaken(tx, parentID, name, ""); err != nil {
				return err
			}

			var maxPos *int
			row := tx.Model(&ActivityModel{}).Select("MAX(position)")
			if parentID == nil {
				row = row.Where("parent_id IS NULL")
			} else {
				row = row.Where("parent_id = ?", *parentID)
			}
			if err := row.Scan(&maxPos).Error; err != nil {
				return err
			}
			if maxPos != nil {
				model.Position = *maxPos + 1
			}
			return tx.Create(&model).Error
		})
	}, 3)
	if err != nil {
		return nil, err
	}

	activity := activityModelToDomain(model, nil)
	return &activity, nil
}

// RenameActivity implements ports.ActivityWriter.RenameActivity
func (r *SQLiteRepository) RenameActivity(ctx context.Context, id, name string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model ActivityModel
			if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("activity %s: %w", id, domain.ErrActivityNotFound)
				}
				return err
			}
			if err := siblingNameTaken(tx, model.ParentID, name, id); err != nil {
				return err
			}
			return tx.Model(&model).Update("name", name).Error
		})
	}, 3)
}

// DeleteActivity implements ports.ActivityWriter.DeleteActivity
func (r *SQLiteRepository) DeleteActivity(ctx context.Context, id string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model ActivityModel
			if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("activity %s: %w", id, domain.ErrActivityNotFound)
				}
				return err
			}

			// Collect the subtree; parent links carry no FK, so cascade here.
			ids := []string{id}
			frontier := []string{id}
			for len(frontier) > 0 {
				var children []ActivityModel
				if err := tx.Where("parent_id IN ?", frontier).Find(&children).Error; err != nil {
					return err
				}
				frontier = frontier[:0]
				for _, child := range children {
					ids = append(ids, child.ID)
					frontier = append(frontier, child.ID)
				}
			}

			// Entries, logs, and habit configs cascade off the activity rows.
			return tx.Where("id IN ?", ids).Delete(&ActivityModel{}).Error
		})
	}, 3)
}

// ReorderSiblings implements ports.ActivityWriter.ReorderSiblings
func (r *SQLiteRepository) ReorderSiblings(ctx context.Context, parentID *string, orderedIDs []string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for pos, id := range orderedIDs {
				q := tx.Model(&ActivityModel{}).Where("id = ?", id)
				if parentID == nil {
					q = q.Where("parent_id IS NULL")
				} else {
					q = q.Where("parent_id = ?", *parentID)
				}
				result := q.Update("position", pos)
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return fmt.Errorf("activity %s is not a child of the given parent: %w", id, domain.ErrActivityNotFound)
				}
			}
			return nil
		})
	}, 3)
}

// SetHabitConfig implements ports.ActivityWriter.SetHabitConfig
func (r *SQLiteRepository) SetHabitConfig(ctx context.Context, id string, cfg *domain.HabitConfig) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model ActivityModel
			if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("activity %s: %w", id, domain.ErrActivityNotFound)
				}
				return err
			}

			if cfg == nil {
				return tx.Where("activity_id = ?", id).Delete(&HabitConfigModel{}).Error
			}

			var existing HabitConfigModel
			err := tx.Where("activity_id = ?", id).First(&existing).Error
			switch {
			case err == nil:
				updated := habitConfigToModel(id, *cfg)
				updated.CreatedAt = existing.CreatedAt
				return tx.Save(&updated).Error
			case errors.Is(err, gorm.ErrRecordNotFound):
				created := habitConfigToModel(id, *cfg)
				return tx.Create(&created).Error
			default:
				return err
			}
		})
	}, 3)
}

// ReorderHabits implements ports.ActivityWriter.ReorderHabits
func (r *SQLiteRepository) ReorderHabits(ctx context.Context, orderedIDs []string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for pos, id := range orderedIDs {
				result := tx.Model(&HabitConfigModel{}).Where("activity_id = ?", id).Update("position", pos)
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return fmt.Errorf("activity %s: %w", id, domain.ErrNotAHabit)
				}
			}
			return nil
		})
	}, 3)
}

// ListTimeEntries implements ports.EntryReader.ListTimeEntries
func (r *SQLiteRepository) ListTimeEntries(ctx context.Context, activityID string) ([]domain.TimeEntry, error) {
	var models []TimeEntryModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("activity_id = ?", activityID).
			Order("started_at").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.TimeEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, entryModelToDomain(m))
	}
	return entries, nil
}

// ListEntriesForDay implements ports.EntryReader.ListEntriesForDay
func (r *SQLiteRepository) ListEntriesForDay(ctx context.Context, day domain.Day) ([]domain.TimeEntry, error) {
	// Day boundaries are local; timestamps are stored in UTC.
	from := day.Time().UTC()
	to := day.AddDays(1).Time().UTC()

	var models []TimeEntryModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("started_at >= ? AND started_at < ?", from, to).
			Order("started_at").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.TimeEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, entryModelToDomain(m))
	}
	return entries, nil
}

// InsertTimeEntry implements ports.EntryWriter.InsertTimeEntry
func (r *SQLiteRepository) InsertTimeEntry(ctx context.Context, entry domain.NewTimeEntry) (string, error) {
	model := newEntryToModel(uuid.New().String(), entry)
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return "", err
	}
	return model.ID, nil
}

// InsertTimeEntries implements ports.EntryWriter.InsertTimeEntries
func (r *SQLiteRepository) InsertTimeEntries(ctx context.Context, entries []domain.NewTimeEntry) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	models := make([]TimeEntryModel, 0, len(entries))
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		id := uuid.New().String()
		models = append(models, newEntryToModel(id, entry))
		ids = append(ids, id)
	}

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for i := range models {
				if err := tx.Create(&models[i]).Error; err != nil {
					return err
				}
			}
			return nil
		})
	}, 3)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateTimeEntryDuration implements ports.EntryWriter.UpdateTimeEntryDuration
func (r *SQLiteRepository) UpdateTimeEntryDuration(ctx context.Context, id string, duration time.Duration) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).
			Model(&TimeEntryModel{}).
			Where("id = ?", id).
			Update("duration_ns", int64(duration))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("entry %s: %w", id, domain.ErrEntryNotFound)
		}
		return nil
	}, 3)
}

// DeleteTimeEntry implements ports.EntryWriter.DeleteTimeEntry
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id string) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TimeEntryModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("entry %s: %w", id, domain.ErrEntryNotFound)
		}
		return nil
	}, 3)
}

// HabitLog implements ports.HabitLogReader.HabitLog
func (r *SQLiteRepository) HabitLog(ctx context.Context, activityID string, day domain.Day) (float64, bool, error) {
	var model HabitLogModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("activity_id = ? AND day = ?", activityID, string(day)).
			First(&model).Error
	}, 3)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return model.Value, true, nil
}

// HabitLogsInRange implements ports.HabitLogReader.HabitLogsInRange
func (r *SQLiteRepository) HabitLogsInRange(ctx context.Context, from, to domain.Day) (map[domain.LogKey]float64, error) {
	var models []HabitLogModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("day >= ? AND day <= ?", string(from), string(to)).
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	logs := make(map[domain.LogKey]float64, len(models))
	for _, m := range models {
		logs[domain.LogKey{ActivityID: m.ActivityID, Day: domain.Day(m.Day)}] = m.Value
	}
	return logs, nil
}

// EarliestHabitLogDay implements ports.HabitLogReader.EarliestHabitLogDay
func (r *SQLiteRepository) EarliestHabitLogDay(ctx context.Context) (domain.Day, bool, error) {
	var earliest *string
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Model(&HabitLogModel{}).
			Select("MIN(day)").
			Scan(&earliest).Error
	}, 3)
	if err != nil {
		return "", false, err
	}
	if earliest == nil {
		return "", false, nil
	}
	return domain.Day(*earliest), true, nil
}

// UpsertHabitLog implements ports.HabitLogWriter.UpsertHabitLog
func (r *SQLiteRepository) UpsertHabitLog(ctx context.Context, activityID string, day domain.Day, value float64) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var activity ActivityModel
			if err := tx.Where("id = ?", activityID).First(&activity).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("activity %s: %w", activityID, domain.ErrActivityNotFound)
				}
				return err
			}

			var existing HabitLogModel
			err := tx.Where("activity_id = ? AND day = ?", activityID, string(day)).First(&existing).Error
			switch {
			case err == nil:
				existing.Value = value
				return tx.Save(&existing).Error
			case errors.Is(err, gorm.ErrRecordNotFound):
				return tx.Create(&HabitLogModel{
					ActivityID: activityID,
					Day:        string(day),
					Value:      value,
				}).Error
			default:
				return err
			}
		})
	}, 3)
}

// ClearHabitLog implements ports.HabitLogWriter.ClearHabitLog
func (r *SQLiteRepository) ClearHabitLog(ctx context.Context, activityID string, day domain.Day) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("activity_id = ? AND day = ?", activityID, string(day)).
			Delete(&HabitLogModel{}).Error
	}, 3)
}

// siblingNameTaken fails when another child of parentID already uses the name.
func siblingNameTaken(tx *gorm.DB, parentID *string, name, excludeID string) error {
	var count int64
	q := tx.Model(&ActivityModel{}).Where("name = ?", name)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	if excludeID != "" {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%q: %w", name, domain.ErrDuplicateSiblingName)
	}
	return nil
}

// withRetry retries transient SQLite busy/locked errors with backoff.
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
