package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-ats/internal/history"
	"github.com/jonathan/resume-ats/internal/types"
)

const recordColumns = `id, user_id, job_title, company,
	overall_score, skills_score, experience_score, format_score, keywords_score,
	suggestions, strong_points, missing_keywords, matched_keywords, recommendations,
	analyzed_at`

// Append inserts a record; the database assigns id and analyzed_at.
func (db *DB) Append(ctx context.Context, record types.AnalysisRecord) (types.AnalysisRecord, error) {
	r := record.Result()
	err := db.pool.QueryRow(ctx,
		`INSERT INTO analysis_records (user_id, job_title, company,
			overall_score, skills_score, experience_score, format_score, keywords_score,
			suggestions, strong_points, missing_keywords, matched_keywords, recommendations)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, analyzed_at`,
		record.UserID, record.JobTitle, record.Company,
		r.OverallScore, r.SkillsScore, r.ExperienceScore, r.FormatScore, r.KeywordsScore,
		r.Suggestions, r.StrongPoints, r.MissingKeywords, r.MatchedKeywords, r.Recommendations,
	).Scan(&record.ID, &record.AnalyzedAt)
	if err != nil {
		return types.AnalysisRecord{}, &history.PersistenceError{Op: "append", Cause: err}
	}
	record.AnalysisResult = r
	return record, nil
}

// ListByUser returns a user's records, newest first.
func (db *DB) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.AnalysisRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+recordColumns+`
		 FROM analysis_records
		 WHERE user_id = $1
		 ORDER BY analyzed_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, &history.PersistenceError{Op: "list", Cause: err}
	}

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, &history.PersistenceError{Op: "list", Cause: err}
	}
	if records == nil {
		records = []types.AnalysisRecord{}
	}
	return records, nil
}

// Delete removes a record owned by userID.
func (db *DB) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM analysis_records WHERE id = $1 AND user_id = $2`,
		recordID, userID,
	)
	if err != nil {
		return &history.PersistenceError{Op: "delete", Cause: err}
	}
	if result.RowsAffected() == 0 {
		return &history.NotFoundError{ID: recordID}
	}
	return nil
}

func scanRecord(row pgx.CollectableRow) (types.AnalysisRecord, error) {
	var r types.AnalysisRecord
	err := row.Scan(
		&r.ID, &r.UserID, &r.JobTitle, &r.Company,
		&r.OverallScore, &r.SkillsScore, &r.ExperienceScore, &r.FormatScore, &r.KeywordsScore,
		&r.Suggestions, &r.StrongPoints, &r.MissingKeywords, &r.MatchedKeywords, &r.Recommendations,
		&r.AnalyzedAt,
	)
	return r, err
}

var _ history.Store = (*DB)(nil)
