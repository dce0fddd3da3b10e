package repository

import (
	"database/sql"

	"github.com/vichannnnn/holy-grail-sub001/models"
)

// AnalyticsRepository keeps fire-and-forget click/view counters per ad slot.
type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) RecordClick(adID string) error {
	_, err := r.db.Exec(`
		INSERT INTO ad_stats (ad_id, clicks, views, updated_at)
		VALUES ($1, 1, 0, NOW())
		ON CONFLICT (ad_id)
		DO UPDATE SET clicks = ad_stats.clicks + 1, updated_at = NOW()`, adID)
	return err
}

func (r *AnalyticsRepository) RecordView(adID string) error {
	_, err := r.db.Exec(`
		INSERT INTO ad_stats (ad_id, clicks, views, updated_at)
		VALUES ($1, 0, 1, NOW())
		ON CONFLICT (ad_id)
		DO UPDATE SET views = ad_stats.views + 1, updated_at = NOW()`, adID)
	return err
}

func (r *AnalyticsRepository) GetStats(adID string) (*models.AdStats, error) {
	var s models.AdStats
	err := r.db.QueryRow(`
		SELECT ad_id, clicks, views, updated_at
		FROM ad_stats WHERE ad_id = $1`, adID).Scan(
		&s.AdID, &s.Clicks, &s.Views, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
