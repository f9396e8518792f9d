package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show graph contents and pending work",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	candidates, err := engine.ListCandidates(ctx)
	if err != nil {
		return err
	}
	pending, err := engine.ListUnextracted(ctx)
	if err != nil {
		return err
	}
	roles, err := engine.ListRoles(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Candidates: %d (%d pending extraction)\n", len(candidates), len(pending))
	fmt.Printf("Roles:      %d\n", len(roles))

	if len(pending) > 0 {
		fmt.Println("\nPending documents (oldest first):")
		for _, row := range pending {
			fmt.Printf("  %s  uploaded %s\n", row.CVFileName, row.UploadedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println("\nRun 'cvgraph process' to extract them.")
	}

	return nil
}
