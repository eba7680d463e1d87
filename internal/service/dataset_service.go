package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/talvik-analytics/shipkpi/internal/domain"
	"github.com/talvik-analytics/shipkpi/internal/storage"
	"github.com/talvik-analytics/shipkpi/internal/workbook"
)

// previewRowCount is how many grid rows the mapping step shows the user.
const previewRowCount = 8

// DatasetService registers uploaded workbooks and serves sheet previews.
// The registry is in-memory: one dataset lives as long as the process, the
// file itself stays under the upload dir and (optionally) in the archive.
type DatasetService struct {
	mu       sync.RWMutex
	datasets map[string]*domain.Dataset
	archive  storage.ObjectStorage
}

func NewDatasetService(archive storage.ObjectStorage) *DatasetService {
	return &DatasetService{
		datasets: make(map[string]*domain.Dataset),
		archive:  archive,
	}
}

// Register opens an uploaded workbook, assigns it a content-derived ID, and
// archives the original file when an archive store is configured. Archiving
// is best-effort: a failed upload logs a warning, the dataset still loads.
func (s *DatasetService) Register(ctx context.Context, filename, filePath string, size int64) (*domain.Dataset, error) {
	wb, err := workbook.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filename, err)
	}
	defer wb.Close()

	id, err := fileFingerprint(filePath)
	if err != nil {
		return nil, err
	}

	dataset := &domain.Dataset{
		ID:         id,
		Name:       filename,
		Path:       filePath,
		Size:       size,
		SheetNames: wb.SheetNames(),
		UploadedAt: time.Now().UTC(),
	}

	if s.archive != nil {
		data, err := os.ReadFile(filePath)
		if err == nil {
			err = s.archive.UploadObject(ctx, path.Join("workbooks", id, filename), data)
		}
		if err != nil {
			log.Warn().Err(err).Str("dataset", id).Msg("workbook archive upload failed")
		}
	}

	s.mu.Lock()
	s.datasets[id] = dataset
	s.mu.Unlock()

	return dataset, nil
}

// Get resolves a registered dataset by ID.
func (s *DatasetService) Get(id string) (*domain.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dataset, ok := s.datasets[id]
	return dataset, ok
}

// List returns all registered datasets, newest first.
func (s *DatasetService) List() []*domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	datasets := make([]*domain.Dataset, 0, len(s.datasets))
	for _, dataset := range s.datasets {
		datasets = append(datasets, dataset)
	}
	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].UploadedAt.After(datasets[j].UploadedAt)
	})
	return datasets
}

// SheetPreview is what the mapping step of the UI needs: a sample of the
// grid, the detected header row, and a suggested field mapping.
type SheetPreview struct {
	Rows      [][]string               `json:"rows"`
	Header    workbook.HeaderCandidate `json:"header"`
	Headers   []string                 `json:"headers"`
	Suggested domain.FieldMapping      `json:"suggestedMapping"`
}

// Preview loads a sheet and runs header detection + mapping suggestion.
func (s *DatasetService) Preview(id, sheet string) (*SheetPreview, error) {
	dataset, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown dataset %s", id)
	}

	wb, err := workbook.Open(dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", dataset.Name, err)
	}
	defer wb.Close()

	grid, err := wb.Grid(sheet)
	if err != nil {
		return nil, err
	}

	candidate := workbook.DetectHeaderRow(grid, 100)
	headers := workbook.ExtractHeaders(grid, candidate.RowIndex)

	sample := grid
	if len(sample) > previewRowCount {
		sample = sample[:previewRowCount]
	}

	return &SheetPreview{
		Rows:      sample,
		Header:    candidate,
		Headers:   headers,
		Suggested: workbook.SuggestMapping(headers),
	}, nil
}

func fileFingerprint(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to fingerprint %s: %w", filePath, err)
	}
	return hex.EncodeToString(h.Sum(nil))[:16], nil
}
