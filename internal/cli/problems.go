package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func problemsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "problems",
		Short: "Inspect the problems in a workspace",
	}

	c.AddCommand(problemsListCmd())
	return c
}

func problemsListCmd() *cobra.Command {
	var workspace string
	var language string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List problems for a language",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			lang := strings.TrimSpace(language)
			if lang == "" {
				lang = ws.cfg.Defaults.Language
			}

			refs, err := ws.problems.ListProblems(lang)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no problems found)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\nLanguage:  %s\n\n", ws.root, lang)
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				fmt.Fprintf(out, "- %s  (%s)\n", r.Name, rel)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Language directory (defaults to blanks.yaml)")
	return cmd
}
