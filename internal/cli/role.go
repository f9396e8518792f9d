package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/khajiev13/cv-agent-fiilterer/internal/docs"
	"github.com/khajiev13/cv-agent-fiilterer/internal/models"
	"github.com/spf13/cobra"
)

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage job postings",
}

var roleID string

var roleAddCmd = &cobra.Command{
	Use:   "add <posting-file>",
	Short: "Extract a job posting and add it to the graph",
	Long: `Extract structured requirements from a job posting document and
upsert them into the graph.

The role id defaults to the normalized job title; pass --id to control
it explicitly. Adding with an existing id updates the role in place and
replaces its requirements.

Examples:
  cvgraph role add backend_engineer.txt
  cvgraph role add posting.md --id backend_engineer_berlin`,
	Args: cobra.ExactArgs(1),
	RunE: runRoleAdd,
}

var roleDeleteCmd = &cobra.Command{
	Use:   "delete <role-id>",
	Short: "Delete a job posting",
	Long: `Delete a role and its requirement edges. Shared skill, field and
keyword nodes referenced by other roles or candidates are preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoleDelete,
}

var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all job postings",
	RunE:  runRoleList,
}

func init() {
	roleAddCmd.Flags().StringVar(&roleID, "id", "", "role id (defaults to the normalized job title)")

	roleCmd.AddCommand(roleAddCmd)
	roleCmd.AddCommand(roleDeleteCmd)
	roleCmd.AddCommand(roleListCmd)
}

func runRoleAdd(cmd *cobra.Command, args []string) error {
	ex, err := getExtractor()
	if err != nil {
		return err
	}

	text, err := docs.ReadText(args[0])
	if err != nil {
		return fmt.Errorf("read posting: %w", err)
	}

	ctx := context.Background()
	rec, err := ex.ExtractRole(ctx, text)
	if err != nil {
		return fmt.Errorf("extract role: %w", err)
	}
	if rec.JobTitle == "" {
		return fmt.Errorf("no job title found in %s", args[0])
	}

	rec.ID = roleID
	if rec.ID == "" {
		rec.ID = models.NormalizeKey(rec.JobTitle)
	}

	created, err := engine.UpsertRole(ctx, rec)
	if err != nil {
		return err
	}

	verb := "updated"
	if created {
		verb = "created"
	}
	fmt.Printf("Role %s %s: %s (%d skills, %d fields)\n",
		rec.ID, verb, rec.JobTitle, len(rec.RequiredSkills), len(rec.FieldsOfStudy))
	return nil
}

func runRoleDelete(cmd *cobra.Command, args []string) error {
	deleted, err := engine.DeleteRole(context.Background(), args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("role %s not found", args[0])
	}
	fmt.Printf("Role %s deleted\n", args[0])
	return nil
}

func runRoleList(cmd *cobra.Command, args []string) error {
	roles, err := engine.ListRoles(context.Background())
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		fmt.Println("No roles.")
		return nil
	}

	for _, r := range roles {
		var extras []string
		if r.LocationCity != nil && *r.LocationCity != "" {
			extras = append(extras, *r.LocationCity)
		}
		if r.RemoteOption {
			extras = append(extras, "remote")
		}
		if r.RoleLevel != nil && *r.RoleLevel != "" {
			extras = append(extras, *r.RoleLevel)
		}
		suffix := ""
		if len(extras) > 0 {
			suffix = " (" + strings.Join(extras, ", ") + ")"
		}
		fmt.Printf("%-30v %s%s\n", r.ID, r.JobTitle, suffix)
	}
	return nil
}
