package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SQLStore keeps unlock records and, optionally, the catalog in a relational database.
// It implements UnlockStore and achievement.Catalog.
type SQLStore struct {
	db  *gorm.DB
	cfg SQLStoreConfig
}

type SQLStoreConfig struct {
	// Path is the SQLite database file. ":memory:" is accepted for tests.
	Path string

	// Now overrides the clock used for grant timestamps.
	Now func() time.Time
}

// NewSQLStore opens the database and migrates the schema.
func NewSQLStore(cfg SQLStoreConfig) (*SQLStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", cfg.Path, err)
	}

	// SQLite allows a single writer.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&UnlockRecordModel{}, &DefinitionModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logrus.Infof("opened sqlite unlock store at %s", cfg.Path)
	return &SQLStore{db: db, cfg: cfg}, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// GetUnlocked reads the player's unlocked set
func (s *SQLStore) GetUnlocked(ctx context.Context, userID string) (achievement.UnlockedSet, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&UnlockRecordModel{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get unlocked achievements: %w", err)
	}

	return achievement.NewUnlockedSet(ids...), nil
}

// Grant inserts the record unless the (user, achievement) pair already exists.
func (s *SQLStore) Grant(ctx context.Context, userID, achievementID string) (bool, error) {
	record := UnlockRecordModel{
		UserID:        userID,
		AchievementID: achievementID,
		GrantedAt:     s.cfg.Now().UTC(),
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).
		Create(&record)
	if result.Error != nil {
		return false, fmt.Errorf("failed to grant achievement %s: %w", achievementID, result.Error)
	}

	inserted := result.RowsAffected == 1
	if inserted {
		logrus.Infof("granted achievement %s to user %s", achievementID, userID)
	} else {
		logrus.Debugf("achievement %s already granted to user %s", achievementID, userID)
	}
	return inserted, nil
}

// Records lists the player's grants ordered by grant time.
func (s *SQLStore) Records(ctx context.Context, userID string) ([]achievement.UnlockRecord, error) {
	var rows []UnlockRecordModel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("granted_at, achievement_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get unlock records: %w", err)
	}

	records := make([]achievement.UnlockRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.ToRecord())
	}
	return records, nil
}

// CountRecords returns how many grants exist for the pair. Used to verify uniqueness.
func (s *SQLStore) CountRecords(ctx context.Context, userID, achievementID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&UnlockRecordModel{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	return count, err
}

// SeedCatalog replaces the stored catalog with the definitions, keeping their order.
// Rows whose id is not in the set are removed. An empty set leaves the catalog untouched.
func (s *SQLStore) SeedCatalog(ctx context.Context, definitions []achievement.Definition) error {
	if len(definitions) == 0 {
		return nil
	}

	rows := make([]DefinitionModel, 0, len(definitions))
	ids := make([]string, 0, len(definitions))
	for i, d := range definitions {
		if err := d.Validate(); err != nil {
			return err
		}
		rows = append(rows, newDefinitionModel(i, d))
		ids = append(ids, d.ID)
	}

	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&rows).Error
		if err != nil {
			return err
		}

		res := tx.Where("id NOT IN ?", ids).Delete(&DefinitionModel{})
		removed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	logrus.Infof("seeded %d achievement definitions, removed %d", len(rows), removed)
	return nil
}

// GetAll returns the catalog in position order.
func (s *SQLStore) GetAll(ctx context.Context) ([]achievement.Definition, error) {
	var rows []DefinitionModel
	if err := s.db.WithContext(ctx).Order("position, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	definitions := make([]achievement.Definition, 0, len(rows))
	for _, row := range rows {
		definitions = append(definitions, row.ToDefinition())
	}
	return definitions, nil
}
