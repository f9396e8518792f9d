// Package ingest wires the document pipeline together: upload, queue,
// text extraction and graph upsert.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/khajiev13/cv-agent-fiilterer/internal/config"
	"github.com/khajiev13/cv-agent-fiilterer/internal/docs"
	"github.com/khajiev13/cv-agent-fiilterer/internal/extract"
	"github.com/khajiev13/cv-agent-fiilterer/internal/metrics"
	"github.com/khajiev13/cv-agent-fiilterer/internal/models"
	"github.com/khajiev13/cv-agent-fiilterer/internal/scheduler"
)

// ErrDocumentNotFound is returned when a queued document cannot be
// located in the upload directory or any fallback location.
var ErrDocumentNotFound = errors.New("document not found")

// fallbackDirs are legacy upload locations searched when a document is
// missing from the configured directory.
var fallbackDirs = []string{"uploads", "data/cvs", "app/data/cvs"}

// Extractor turns raw document text into structured records.
type Extractor interface {
	ExtractCandidate(ctx context.Context, cvText, cvFileName string) (models.CandidateRecord, error)
}

// Graph persists candidate records.
type Graph interface {
	RegisterUpload(ctx context.Context, storageName, originalName, sourcePath string) error
	UpsertCandidate(ctx context.Context, rec models.CandidateRecord) error
}

// Service is the ingestion facade used by the CLI.
type Service struct {
	graph     Graph
	extractor Extractor
	readText  func(path string) (string, error)
	sched     *scheduler.Scheduler
	collector *metrics.Collector
	uploadDir string
	logger    *slog.Logger
}

// NewService creates the ingestion service and its worker pool.
func NewService(cfg config.Config, g Graph, ex Extractor, collector *metrics.Collector, logger *slog.Logger) *Service {
	s := &Service{
		graph:     g,
		extractor: ex,
		readText:  docs.ReadText,
		collector: collector,
		uploadDir: cfg.UploadDir,
		logger:    logger,
	}
	s.sched = scheduler.New(cfg.Workers, s.processJob, logger)
	s.sched.IsFatal = func(err error) bool {
		return errors.Is(err, extract.ErrFatalAPI)
	}
	return s
}

// EnqueueDocument copies the document into the upload directory under a
// unique storage name, registers it as an unextracted candidate and
// queues it for processing.
func (s *Service) EnqueueDocument(ctx context.Context, sourcePath string) (scheduler.Job, error) {
	if !docs.Supported(sourcePath) {
		return scheduler.Job{}, fmt.Errorf("%w: %s", docs.ErrUnsupportedFormat, filepath.Ext(sourcePath))
	}

	originalName := filepath.Base(sourcePath)
	storageName := models.NewStorageName(originalName)
	storedPath := filepath.Join(s.uploadDir, storageName)

	if err := copyFile(sourcePath, storedPath); err != nil {
		return scheduler.Job{}, fmt.Errorf("store upload: %w", err)
	}

	if err := s.graph.RegisterUpload(ctx, storageName, originalName, storedPath); err != nil {
		return scheduler.Job{}, fmt.Errorf("register upload: %w", err)
	}

	job := models.NewIngestionJob(originalName, storageName, storedPath)
	s.sched.Enqueue(job)
	return job, nil
}

// Requeue puts an already-registered document back on the queue
// without starting the streaming pool. Used when re-processing pending
// documents in batch.
func (s *Service) Requeue(job scheduler.Job) {
	s.sched.Queue(job)
}

// ProcessAllQueued drains the queue and blocks until every queued
// document has been attempted. It returns the number of successes.
func (s *Service) ProcessAllQueued(ctx context.Context) int {
	return s.sched.ProcessAll(ctx)
}

// StartProcessing launches the streaming worker pool.
func (s *Service) StartProcessing() {
	s.sched.Start()
}

// StopProcessing signals workers to stop and waits up to timeout for
// in-flight documents to finish.
func (s *Service) StopProcessing(timeout time.Duration) error {
	return s.sched.Stop(timeout)
}

// Status reports queue depth and processing counters.
func (s *Service) Status() scheduler.Status {
	return s.sched.Status()
}

// GetQueueDepth returns the number of jobs waiting in the queue.
func (s *Service) GetQueueDepth() int {
	return s.sched.Status().QueueDepth
}

// GetProcessingActive reports whether the streaming pool is running.
func (s *Service) GetProcessingActive() bool {
	return s.sched.Status().Active
}

// Metrics reports per-stage timing statistics.
func (s *Service) Metrics() metrics.Snapshot {
	return s.collector.Snapshot()
}

// Workers returns the worker pool size.
func (s *Service) Workers() int {
	return s.sched.Workers()
}

// processJob runs the read -> extract -> upsert pipeline for one job.
func (s *Service) processJob(ctx context.Context, job scheduler.Job) error {
	jobStart := time.Now()

	path, err := s.resolveDocumentPath(job)
	if err != nil {
		s.collector.RecordError(metrics.OpRead)
		s.collector.RecordError(metrics.OpJob)
		return err
	}

	readStart := time.Now()
	text, err := s.readText(path)
	if err != nil {
		s.collector.RecordError(metrics.OpRead)
		s.collector.RecordError(metrics.OpJob)
		return fmt.Errorf("read %s: %w", job.StorageName, err)
	}
	s.collector.RecordTiming(metrics.OpRead, time.Since(readStart))

	extractStart := time.Now()
	rec, err := s.extractor.ExtractCandidate(ctx, text, job.OriginalName)
	if err != nil {
		s.collector.RecordError(metrics.OpExtract)
		s.collector.RecordError(metrics.OpJob)
		return fmt.Errorf("extract %s: %w", job.StorageName, err)
	}
	s.collector.RecordTiming(metrics.OpExtract, time.Since(extractStart))

	rec.ID = models.CandidateID(job.StorageName)
	rec.CVFileName = job.StorageName
	rec.CVSourcePath = path

	upsertStart := time.Now()
	if err := s.graph.UpsertCandidate(ctx, rec); err != nil {
		s.collector.RecordError(metrics.OpUpsert)
		s.collector.RecordError(metrics.OpJob)
		return fmt.Errorf("upsert %s: %w", job.StorageName, err)
	}
	s.collector.RecordTiming(metrics.OpUpsert, time.Since(upsertStart))

	s.collector.RecordTiming(metrics.OpJob, time.Since(jobStart))
	return nil
}

// resolveDocumentPath locates the document on disk, falling back to
// legacy upload directories when the recorded path has gone stale.
func (s *Service) resolveDocumentPath(job scheduler.Job) (string, error) {
	candidates := make([]string, 0, len(fallbackDirs)+2)
	if job.SourcePath != "" {
		candidates = append(candidates, job.SourcePath)
	}
	candidates = append(candidates, filepath.Join(s.uploadDir, job.StorageName))
	for _, dir := range fallbackDirs {
		candidates = append(candidates, filepath.Join(dir, job.StorageName))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, job.StorageName)
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
