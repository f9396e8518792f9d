package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var candidateCmd = &cobra.Command{
	Use:   "candidate",
	Short: "Manage ingested candidates",
}

var candidateKeepFiles bool

var candidateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all candidates",
	RunE:  runCandidateList,
}

var candidateDeleteCmd = &cobra.Command{
	Use:   "delete <candidate-id>",
	Short: "Delete a candidate and its stored document",
	Long: `Delete a candidate node, its edges and the stored CV file. Shared
skill, company and field nodes are preserved. Pass --keep-files to
leave the document on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runCandidateDelete,
}

var candidateDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every candidate and stored document",
	RunE:  runCandidateDeleteAll,
}

func init() {
	candidateDeleteCmd.Flags().BoolVar(&candidateKeepFiles, "keep-files", false, "do not delete stored documents")
	candidateDeleteAllCmd.Flags().BoolVar(&candidateKeepFiles, "keep-files", false, "do not delete stored documents")

	candidateCmd.AddCommand(candidateListCmd)
	candidateCmd.AddCommand(candidateDeleteCmd)
	candidateCmd.AddCommand(candidateDeleteAllCmd)
}

func runCandidateList(cmd *cobra.Command, args []string) error {
	rows, err := engine.ListCandidates(context.Background())
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No candidates.")
		return nil
	}

	for _, row := range rows {
		state := ""
		if !row.Extracted {
			state = "  [pending]"
		}
		name := row.Name
		if name == "" {
			name = "(unextracted)"
		}
		fmt.Printf("%-40v %-25s %s%s\n", row.ID, name, row.JobTitle, state)
	}
	return nil
}

func runCandidateDelete(cmd *cobra.Command, args []string) error {
	path, err := engine.DeleteCandidate(context.Background(), args[0])
	if err != nil {
		return err
	}

	removeStoredFile(path)
	fmt.Printf("Candidate %s deleted\n", args[0])
	return nil
}

func runCandidateDeleteAll(cmd *cobra.Command, args []string) error {
	paths, err := engine.DeleteAllCandidates(context.Background())
	if err != nil {
		return err
	}

	for _, path := range paths {
		removeStoredFile(path)
	}
	fmt.Printf("Deleted %d candidate(s)\n", len(paths))
	return nil
}

func removeStoredFile(path string) {
	if candidateKeepFiles || path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not remove %s: %v\n", path, err)
	}
}
