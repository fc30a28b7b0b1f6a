package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hotel-price-scraper/utils"
)

// FileDataset appends one JSON document per line to a local file
type FileDataset struct {
	mu       sync.Mutex
	filePath string
	logger   *utils.Logger
}

// NewFileDataset creates a FileDataset writing to <dir>/dataset.jsonl
func NewFileDataset(dir string, logger *utils.Logger) *FileDataset {
	return &FileDataset{filePath: filepath.Join(dir, "dataset.jsonl"), logger: logger}
}

// Path returns the file items are appended to
func (d *FileDataset) Path() string { return d.filePath }

// Push appends item as a single JSON line
func (d *FileDataset) Push(_ context.Context, item any) error {
	line, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode dataset item: %w", err)
	}
	line = append(line, '\n')

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(d.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}
	file, err := os.OpenFile(d.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	if _, err := file.Write(line); err != nil {
		file.Close()
		return fmt.Errorf("failed to append dataset item: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close dataset: %w", err)
	}

	d.logger.Info("Result pushed to dataset: %s", d.filePath)
	return nil
}
