package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"ahp-decide/internal/decision"
)

// Database wraps the GORM DB handle and exposes decision repository helpers.
type Database struct {
	gorm *gorm.DB
	mu   sync.Mutex
}

// Open initializes the SQLite-backed database at the provided path.
func Open(path string, silent bool) (*Database, error) {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&DecisionRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logrus.WithError(err).Warn("enable WAL mode")
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		logrus.WithError(err).Warn("set synchronous pragma")
	}
	return &Database{gorm: db}, nil
}

// GORM exposes the raw gorm.DB handle.
func (d *Database) GORM() *gorm.DB {
	return d.gorm
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveDecision upserts the record for the given decision, keyed by its id.
func (d *Database) SaveDecision(dec *decision.Decision) (*DecisionRecord, error) {
	if dec == nil {
		return nil, errors.New("decision is nil")
	}
	record := &DecisionRecord{}
	if err := record.SetPayload(dec); err != nil {
		return nil, fmt.Errorf("encode decision payload: %w", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.gorm.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"goal",
			"payload_json",
			"recommended_choice",
			"evaluated",
			"criteria_count",
			"alternatives_count",
			"updated_at",
		}),
	}).Create(record).Error
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetDecision loads the record with the given id.
func (d *Database) GetDecision(id string) (*DecisionRecord, error) {
	var record DecisionRecord
	if err := d.gorm.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListDecisions returns a page of records ordered by most recent update,
// along with the total count.
func (d *Database) ListDecisions(offset, limit int) ([]DecisionRecord, int64, error) {
	var total int64
	if err := d.gorm.Model(&DecisionRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query := d.gorm.Order("updated_at DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []DecisionRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// DeleteDecision removes the record with the given id. Missing ids are not
// an error.
func (d *Database) DeleteDecision(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Delete(&DecisionRecord{}, "id = ?", id).Error
}
