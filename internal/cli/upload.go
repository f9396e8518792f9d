package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var uploadWait bool

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload CV documents and queue them for processing",
	Long: `Upload one or more CV documents (.pdf, .txt, .md).

Each document is stored under a unique name, registered as an
unextracted candidate and queued. Workers pick jobs up immediately;
pass --wait to block until every queued document has been processed.

Examples:
  cvgraph upload jane_doe_cv.pdf
  cvgraph upload cvs/*.pdf --wait`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVarP(&uploadWait, "wait", "w", false, "block until the queue is drained")
}

func runUpload(cmd *cobra.Command, args []string) error {
	svc, err := getIngestService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	queued := 0
	for _, path := range args {
		job, err := svc.EnqueueDocument(ctx, path)
		if err != nil {
			fmt.Printf("✗ %s: %v\n", path, err)
			continue
		}
		queued++
		fmt.Printf("✓ %s queued as %s\n", job.OriginalName, job.StorageName)
	}

	if queued == 0 {
		return fmt.Errorf("no documents queued")
	}

	if uploadWait {
		// Hand the queue to a blocking drain.
		if err := svc.StopProcessing(30 * time.Second); err != nil {
			return err
		}
		// Streaming workers may already have finished part of the
		// batch before the stop, so judge the outcome from the
		// counters, not the drain's return value.
		svc.ProcessAllQueued(ctx)
		status := svc.Status()
		fmt.Printf("\nProcessed: %d succeeded, %d failed\n", status.Succeeded, status.Failed)
		if status.Failed > 0 {
			return fmt.Errorf("%d document(s) failed", status.Failed)
		}
		return nil
	}

	// Give the streaming pool time to drain before the process exits.
	fmt.Printf("\n%d document(s) queued, processing with %d workers\n", queued, svc.Workers())
	for {
		st := svc.Status()
		if st.Succeeded+st.Failed >= int64(queued) {
			break
		}
		if !st.Active && st.QueueDepth > 0 {
			// Pool halted itself on a fatal API error.
			break
		}
		time.Sleep(200 * time.Millisecond)
	}
	if err := svc.StopProcessing(30 * time.Second); err != nil {
		return err
	}
	status := svc.Status()
	fmt.Printf("Processed: %d succeeded, %d failed\n", status.Succeeded, status.Failed)
	return nil
}
