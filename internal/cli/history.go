package cli

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/usecase"
)

func historyCmd() *cobra.Command {
	var workspace string
	var query string
	var format string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past sessions, optionally projecting a JSONPath",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			rows, err := usecase.NewQueryHistory(ws.sessions).Execute(strings.TrimSpace(query))
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), rows, query != "", format)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "JSONPath evaluated against each session (e.g. $.score)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

type historyRowJSON struct {
	Session string                  `json:"session"`
	Value   string                  `json:"value,omitempty"`
	Error   string                  `json:"error,omitempty"`
	Detail  *domain.SessionArtifact `json:"detail,omitempty"`
}

func printHistory(w io.Writer, rows []usecase.HistoryRow, queried bool, format string) error {
	switch format {
	case "json":
		out := make([]historyRowJSON, 0, len(rows))
		for _, r := range rows {
			jr := historyRowJSON{Session: r.Session.ID, Value: r.Value}
			if r.Err != nil {
				jr.Error = r.Err.Error()
			}
			if !queried {
				a := r.Session
				jr.Detail = &a
			}
			out = append(out, jr)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case "pretty", "":
		if len(rows) == 0 {
			fmt.Fprintln(w, "(no sessions yet)")
			return nil
		}
		for _, r := range rows {
			a := r.Session
			switch {
			case r.Err != nil:
				fmt.Fprintf(w, "- %s  (%v)\n", a.ID, r.Err)
			case queried:
				fmt.Fprintf(w, "- %s  %s\n", a.ID, r.Value)
			default:
				fmt.Fprintf(w, "- %s  %s  problems=%d  blanks=%d/%d  accuracy=%.2f%%  score=%.2f\n",
					a.ID, a.Language, a.ProblemsCompleted, a.FilledBlanks, a.TotalBlanks, a.Accuracy*100, a.Score)
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
