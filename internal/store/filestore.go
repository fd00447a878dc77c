package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"pincheck/internal/models"
)

const tempDataDir = "temp_data"

// FileStore keeps records as JSON array files under <dir>/temp_data:
// pincodes.json for detail rows, pincode_successes.json for Found checks and
// pincode_failures.json for everything else.
type FileStore struct {
	dir         string
	detailsPath string
	successPath string
	failurePath string
}

func OpenFileStore(dir string) (*FileStore, error) {
	tempDir := filepath.Join(dir, tempDataDir)
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	fs := &FileStore{
		dir:         dir,
		detailsPath: filepath.Join(tempDir, "pincodes.json"),
		successPath: filepath.Join(tempDir, "pincode_successes.json"),
		failurePath: filepath.Join(tempDir, "pincode_failures.json"),
	}

	for _, path := range []string{fs.detailsPath, fs.successPath, fs.failurePath} {
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
			return nil, fmt.Errorf("failed to initialize %s: %w", path, err)
		}
	}

	return fs, nil
}

// Dir returns the store's root directory.
func (fs *FileStore) Dir() string {
	return fs.dir
}

func (fs *FileStore) AppendDetails(ctx context.Context, details []models.PincodeDetail) error {
	if len(details) == 0 {
		return nil
	}
	existing, err := readJSONFile[models.PincodeDetail](fs.detailsPath)
	if err != nil {
		return err
	}
	return writeJSONFile(fs.detailsPath, append(existing, details...))
}

func (fs *FileStore) AppendCheck(ctx context.Context, check models.PincodeCheck) error {
	path := fs.failurePath
	if check.Status == models.StatusFound {
		path = fs.successPath
	}
	existing, err := readJSONFile[models.PincodeCheck](path)
	if err != nil {
		return err
	}
	return writeJSONFile(path, append(existing, check))
}

func (fs *FileStore) Details(ctx context.Context) ([]models.PincodeDetail, error) {
	return readJSONFile[models.PincodeDetail](fs.detailsPath)
}

// Checks merges both outcome files, ordered by check time so that the
// newest entry per code is last.
func (fs *FileStore) Checks(ctx context.Context) ([]models.PincodeCheck, error) {
	successes, err := readJSONFile[models.PincodeCheck](fs.successPath)
	if err != nil {
		return nil, err
	}
	failures, err := readJSONFile[models.PincodeCheck](fs.failurePath)
	if err != nil {
		return nil, err
	}

	checks := append(successes, failures...)
	sort.SliceStable(checks, func(i, j int) bool {
		return checks[i].CheckedAt.Before(checks[j].CheckedAt)
	})
	return checks, nil
}

func (fs *FileStore) HasSuccess(ctx context.Context, pincode string) (bool, error) {
	successes, err := readJSONFile[models.PincodeCheck](fs.successPath)
	if err != nil {
		return false, err
	}
	for _, check := range successes {
		if check.Pincode == pincode {
			return true, nil
		}
	}
	return false, nil
}

func (fs *FileStore) Close() error {
	return nil
}

func readJSONFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return items, nil
}

func writeJSONFile[T any](path string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
