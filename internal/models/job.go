package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IngestionJob is one unit of ingestion work: a single document moving
// through the queue. Jobs are transient; they live only in the queue
// and in in-flight worker state.
type IngestionJob struct {
	OriginalName string    `json:"original_name"`
	StorageName  string    `json:"storage_name"`
	SourcePath   string    `json:"source_path"`
	EnqueuedAt   time.Time `json:"enqueued_at"`
}

// NewStorageName produces a storage-unique file name for an uploaded
// document, preserving the original extension so the reader can pick
// the right text extractor later.
func NewStorageName(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	return fmt.Sprintf("%s_%s%s", NormalizeKey(base), uuid.New().String()[:8], ext)
}

// NewIngestionJob builds a job for a document already saved at path.
func NewIngestionJob(originalName, storageName, path string) IngestionJob {
	return IngestionJob{
		OriginalName: originalName,
		StorageName:  storageName,
		SourcePath:   path,
		EnqueuedAt:   time.Now(),
	}
}
