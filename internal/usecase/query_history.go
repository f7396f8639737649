package usecase

import (
	json "github.com/goccy/go-json"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/ports"
	"github.com/aalvaropc/blanks/internal/usecase/extract"
)

// HistoryRow is one stored session, optionally reduced to a query result.
type HistoryRow struct {
	Session domain.SessionArtifact
	Value   string
	Err     error
}

type QueryHistory struct {
	sessions ports.SessionStore
}

func NewQueryHistory(sessions ports.SessionStore) *QueryHistory {
	return &QueryHistory{sessions: sessions}
}

// Execute lists stored sessions. When expr is non-empty every session is
// also evaluated against the JSONPath expression; per-session failures are
// reported on the row rather than aborting the listing.
func (uc *QueryHistory) Execute(expr string) ([]HistoryRow, error) {
	arts, err := uc.sessions.ListSessions()
	if err != nil {
		return nil, err
	}

	rows := make([]HistoryRow, 0, len(arts))
	for _, a := range arts {
		row := HistoryRow{Session: a}
		if expr != "" {
			b, merr := json.Marshal(a)
			if merr != nil {
				row.Err = merr
			} else {
				row.Value, row.Err = extract.Query(b, expr)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
