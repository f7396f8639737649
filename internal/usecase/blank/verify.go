package blank

import (
	"sort"

	"github.com/aalvaropc/blanks/internal/domain"
)

// Verify compares the edited text against the original character of every
// blank. Positions past the end of edited (the user shortened the file) are
// skipped: they count towards Total but are neither correct nor mismatched.
//
// Mismatches are ordered by position. Neither input is modified.
func Verify(edited string, blanks domain.BlankMap) domain.RoundResult {
	runes := []rune(edited)
	res := domain.RoundResult{
		Total:      len(blanks),
		Mismatches: []domain.Mismatch{},
	}

	for pos, want := range blanks {
		if pos < 0 || pos >= len(runes) {
			continue
		}
		if got := runes[pos]; got == want {
			res.Correct++
		} else {
			res.Mismatches = append(res.Mismatches, domain.Mismatch{
				Position: pos,
				Expected: want,
				Actual:   got,
			})
		}
	}

	sort.Slice(res.Mismatches, func(i, j int) bool {
		return res.Mismatches[i].Position < res.Mismatches[j].Position
	})
	return res
}

// Remaining counts blanks whose position in edited still holds the sentinel.
func Remaining(edited string, blanks domain.BlankMap) int {
	runes := []rune(edited)
	n := 0
	for pos := range blanks {
		if pos >= 0 && pos < len(runes) && runes[pos] == domain.Sentinel {
			n++
		}
	}
	return n
}
