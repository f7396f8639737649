package usecase

import (
	"fmt"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/usecase/blank"
)

// Selection is the problem picked for the next round.
type Selection struct {
	Problem domain.ProblemRef
	// FellBack is set when a pinned problem number was not found and the
	// selection mode was used instead.
	FellBack bool
}

// SelectProblem picks the next problem from files (sorted by name).
//
// A pinned number wins when some file name starts with its zero-padded
// four digit form ("0001"). Otherwise random mode picks uniformly and
// sequential mode picks the file after current, wrapping around.
func SelectProblem(files []domain.ProblemRef, current string, number *int, mode domain.SelectionMode, rng blank.RandSource) (Selection, error) {
	if len(files) == 0 {
		return Selection{}, &domain.OpError{
			Op:   "usecase.select_problem",
			Kind: domain.KindEmpty,
			Err:  domain.ErrNoProblems,
		}
	}

	var sel Selection
	if number != nil {
		prefix := fmt.Sprintf("%04d", *number)
		for _, f := range files {
			if len(f.Name) >= len(prefix) && f.Name[:len(prefix)] == prefix {
				return Selection{Problem: f}, nil
			}
		}
		sel.FellBack = true
	}

	switch mode {
	case domain.ModeRandom:
		if rng == nil {
			rng = blank.NewRand()
		}
		sel.Problem = files[rng.IntN(len(files))]
	case domain.ModeSequential:
		next := 0
		for i, f := range files {
			if current != "" && f.Path == current {
				next = (i + 1) % len(files)
				break
			}
		}
		sel.Problem = files[next]
	default:
		sel.Problem = files[0]
	}
	return sel, nil
}
