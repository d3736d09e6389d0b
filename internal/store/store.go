package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"survey-response-service/internal/metrics"
	"survey-response-service/internal/model"
)

// Store is the injected storage abstraction over the archive document.
// Read never fails: any unreadable state degrades to a valid archive.
type Store interface {
	Read() model.Archive
	Write(archive model.Archive) error
}

// FileStore owns the on-disk JSON archive document
type FileStore struct {
	path    string
	metrics *metrics.Metrics
}

// NewFileStore creates a file-backed archive store. Metrics may be nil.
func NewFileStore(path string, m *metrics.Metrics) *FileStore {
	return &FileStore{path: path, metrics: m}
}

// Read ensures the backing file exists (creating an empty canonical
// archive if absent), parses it and normalizes the content. Absent,
// corrupt and legacy-shaped files each get their own diagnostic.
func (s *FileStore) Read() model.Archive {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logrus.WithField("file", s.path).Info("Archive file absent, creating empty archive")
			archive := model.NewArchive()
			if werr := s.Write(archive); werr != nil {
				logrus.WithField("file", s.path).Warnf("Failed to create archive file: %v", werr)
			}
			return archive
		}
		logrus.WithField("file", s.path).Warnf("Failed to read archive file: %v", err)
		return model.NewArchive()
	}

	result := Normalize(data)
	switch result.Source {
	case SourceCorrupt:
		logrus.WithField("file", s.path).Warn("Archive file unreadable, degrading to empty archive")
	case SourceLegacy:
		logrus.WithFields(logrus.Fields{
			"file":    s.path,
			"entries": result.Migrated,
		}).Info("Migrated legacy archive to current shape")
		if s.metrics != nil {
			s.metrics.LegacyMigrations.Add(float64(result.Migrated))
		}
	}
	return result.Archive
}

// Write serializes the full archive and overwrites the backing file in a
// single rename, so a crash mid-write never leaves a truncated document.
// Last writer wins: there is no cross-process locking.
func (s *FileStore) Write(archive model.Archive) error {
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal archive: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace archive: %w", err)
	}
	return nil
}
