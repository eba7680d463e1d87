package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/talvik-analytics/shipkpi/internal/domain"
	"github.com/talvik-analytics/shipkpi/internal/repository"
)

// PresetService manages saved mapping/rules/filters bundles.
type PresetService struct {
	repo repository.PresetRepository
}

func NewPresetService(repo repository.PresetRepository) *PresetService {
	return &PresetService{repo: repo}
}

// Save stores a preset, assigning an ID and creation time when missing.
func (s *PresetService) Save(ctx context.Context, preset *domain.Preset) error {
	if strings.TrimSpace(preset.Name) == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	if preset.ID == "" {
		preset.ID = newPresetID()
	}
	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = time.Now().UTC()
	}
	return s.repo.SavePreset(ctx, preset)
}

func (s *PresetService) List(ctx context.Context) ([]*domain.Preset, error) {
	return s.repo.GetPresets(ctx)
}

func (s *PresetService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("preset id must not be empty")
	}
	return s.repo.DeletePreset(ctx, id)
}

func newPresetID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("preset-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
