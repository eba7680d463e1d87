package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

type presetRepository struct {
	db *DB
}

func NewPresetRepository(db *DB) *presetRepository {
	return &presetRepository{db: db}
}

func (r *presetRepository) SavePreset(ctx context.Context, preset *domain.Preset) error {
	mapping, err := json.Marshal(preset.Mapping)
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}
	rules, err := json.Marshal(preset.Rules)
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	filters, err := json.Marshal(preset.Filters)
	if err != nil {
		return fmt.Errorf("failed to encode filters: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO presets (id, name, mapping, rules, filters, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id)
			DO UPDATE SET
				name = EXCLUDED.name,
				mapping = EXCLUDED.mapping,
				rules = EXCLUDED.rules,
				filters = EXCLUDED.filters,
				updated_at = NOW()
		`
		createdAt := preset.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx, query, preset.ID, preset.Name, mapping, rules, filters, createdAt); err != nil {
			return fmt.Errorf("failed to upsert preset: %w", err)
		}
		return nil
	})
}

func (r *presetRepository) GetPresets(ctx context.Context) ([]*domain.Preset, error) {
	query := `
		SELECT id, name, mapping, rules, filters, created_at
		FROM presets
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer rows.Close()

	presets := make([]*domain.Preset, 0)
	for rows.Next() {
		var (
			preset  domain.Preset
			mapping []byte
			rules   []byte
			filters []byte
		)
		if err := rows.Scan(&preset.ID, &preset.Name, &mapping, &rules, &filters, &preset.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		if err := json.Unmarshal(mapping, &preset.Mapping); err != nil {
			return nil, fmt.Errorf("failed to decode mapping for preset %s: %w", preset.ID, err)
		}
		if err := json.Unmarshal(rules, &preset.Rules); err != nil {
			return nil, fmt.Errorf("failed to decode rules for preset %s: %w", preset.ID, err)
		}
		if err := json.Unmarshal(filters, &preset.Filters); err != nil {
			return nil, fmt.Errorf("failed to decode filters for preset %s: %w", preset.ID, err)
		}
		presets = append(presets, &preset)
	}

	return presets, rows.Err()
}

func (r *presetRepository) DeletePreset(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete preset %s: %w", id, err)
	}
	return nil
}
