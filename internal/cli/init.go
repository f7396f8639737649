package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/blanks/internal/infra/fsworkspace"
	"github.com/aalvaropc/blanks/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var language string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a Blanks workspace with sample problems",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, language, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready at %s\n", root)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Directory to initialize")
	cmd.Flags().StringVarP(&language, "language", "l", "python", "Language directory to seed under problems/")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return cmd
}
