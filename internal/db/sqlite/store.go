// Package sqlite provides a single-file history store for local CLI use.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jonathan/resume-ats/internal/history"
	"github.com/jonathan/resume-ats/internal/types"
)

// analysisRow is the table layout of a record.
type analysisRow struct {
	ID              uuid.UUID `gorm:"type:text;primaryKey"`
	UserID          uuid.UUID `gorm:"type:text;not null;index:idx_user_time,priority:1"`
	JobTitle        *string
	Company         *string
	OverallScore    int       `gorm:"not null"`
	SkillsScore     int       `gorm:"not null"`
	ExperienceScore int       `gorm:"not null"`
	FormatScore     int       `gorm:"not null"`
	KeywordsScore   int       `gorm:"not null"`
	Suggestions     []string  `gorm:"serializer:json"`
	StrongPoints    []string  `gorm:"serializer:json"`
	MissingKeywords []string  `gorm:"serializer:json"`
	MatchedKeywords []string  `gorm:"serializer:json"`
	Recommendations []string  `gorm:"serializer:json"`
	AnalyzedAt      time.Time `gorm:"not null;index:idx_user_time,priority:2"`
}

func (analysisRow) TableName() string { return "analysis_records" }

// Store is a gorm-backed history.Store over SQLite.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and migrates it.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(gormsqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite handle: %w", err)
	}
	// sqlite allows one writer at a time
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&analysisRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Append stores record with a new id and the current time.
func (s *Store) Append(ctx context.Context, record types.AnalysisRecord) (types.AnalysisRecord, error) {
	record.ID = uuid.New()
	record.AnalyzedAt = s.now().UTC()
	record.AnalysisResult = record.Result()

	row := toRow(record)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return types.AnalysisRecord{}, &history.PersistenceError{Op: "append", Cause: err}
	}
	return record, nil
}

// ListByUser returns a user's records, newest first.
func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.AnalysisRecord, error) {
	var rows []analysisRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("analyzed_at DESC").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, &history.PersistenceError{Op: "list", Cause: err}
	}

	out := make([]types.AnalysisRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

// Delete removes a record owned by userID.
func (s *Store) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recordID, userID).
		Delete(&analysisRow{})
	if result.Error != nil {
		return &history.PersistenceError{Op: "delete", Cause: result.Error}
	}
	if result.RowsAffected == 0 {
		return &history.NotFoundError{ID: recordID}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(r types.AnalysisRecord) analysisRow {
	return analysisRow{
		ID:              r.ID,
		UserID:          r.UserID,
		JobTitle:        r.JobTitle,
		Company:         r.Company,
		OverallScore:    r.OverallScore,
		SkillsScore:     r.SkillsScore,
		ExperienceScore: r.ExperienceScore,
		FormatScore:     r.FormatScore,
		KeywordsScore:   r.KeywordsScore,
		Suggestions:     r.Suggestions,
		StrongPoints:    r.StrongPoints,
		MissingKeywords: r.MissingKeywords,
		MatchedKeywords: r.MatchedKeywords,
		Recommendations: r.Recommendations,
		AnalyzedAt:      r.AnalyzedAt,
	}
}

func fromRow(r analysisRow) types.AnalysisRecord {
	rec := types.AnalysisRecord{
		ID:         r.ID,
		UserID:     r.UserID,
		JobTitle:   r.JobTitle,
		Company:    r.Company,
		AnalyzedAt: r.AnalyzedAt.UTC(),
		AnalysisResult: types.AnalysisResult{
			OverallScore:    r.OverallScore,
			SkillsScore:     r.SkillsScore,
			ExperienceScore: r.ExperienceScore,
			FormatScore:     r.FormatScore,
			KeywordsScore:   r.KeywordsScore,
			Suggestions:     r.Suggestions,
			StrongPoints:    r.StrongPoints,
			MissingKeywords: r.MissingKeywords,
			MatchedKeywords: r.MatchedKeywords,
			Recommendations: r.Recommendations,
		},
	}
	rec.AnalysisResult = rec.AnalysisResult.Clone()
	return rec
}

var _ history.Store = (*Store)(nil)
