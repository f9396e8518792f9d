package cli

import (
	"context"
	"fmt"

	"github.com/khajiev13/cv-agent-fiilterer/internal/models"
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process all uploaded documents that were never extracted",
	Long: `Re-queue every registered document whose extraction is still pending
and drain the queue.

Documents end up pending when an earlier run was interrupted or a
previous extraction failed. Queue order follows upload order.`,
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	svc, err := getIngestService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	pending, err := engine.ListUnextracted(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to process.")
		return nil
	}

	fmt.Printf("Processing %d pending document(s) with %d workers\n", len(pending), svc.Workers())

	for _, row := range pending {
		original := row.CVFileName
		if row.OriginalName != nil && *row.OriginalName != "" {
			original = *row.OriginalName
		}
		svc.Requeue(models.NewIngestionJob(original, row.CVFileName, row.CVSourcePath))
	}

	succeeded := svc.ProcessAllQueued(ctx)
	status := svc.Status()
	fmt.Printf("Done: %d succeeded, %d failed\n", succeeded, status.Failed)

	snap := svc.Metrics()
	if snap.Extract != nil {
		fmt.Printf("Extraction: avg %.0fms per document\n", snap.Extract.AvgTimeMs)
	}

	if status.Failed > 0 {
		return fmt.Errorf("%d document(s) failed", status.Failed)
	}
	return nil
}
