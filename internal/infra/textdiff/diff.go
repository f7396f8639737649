// Package textdiff explains how an edited problem file drifted from the
// original when blanks no longer line up by position.
package textdiff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Report summarizes the difference between the original and edited text.
type Report struct {
	Similarity float64 `json:"similarity"`
	// LengthDelta is edited minus original, in runes.
	LengthDelta int `json:"length_delta"`
	// FirstShift is the rune position in the original where the first
	// insertion or deletion happened, or -1 when only substitutions occurred.
	FirstShift int    `json:"first_shift"`
	Patch      string `json:"patch,omitempty"`
}

// Shifted reports whether positions after some point no longer line up.
func (r Report) Shifted() bool { return r.FirstShift >= 0 }

// Compare diffs original against edited at character granularity.
func Compare(original, edited string) Report {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, edited, false)

	origLen := utf8.RuneCountInString(original)
	editLen := utf8.RuneCountInString(edited)

	maxLen := origLen
	if editLen > maxLen {
		maxLen = editLen
	}
	similarity := 1.0
	if maxLen > 0 {
		similarity = 1.0 - float64(dmp.DiffLevenshtein(diffs))/float64(maxLen)
	}
	if similarity < 0 {
		similarity = 0
	}

	r := Report{
		Similarity:  similarity,
		LengthDelta: editLen - origLen,
		FirstShift:  firstShift(diffs),
	}
	if r.Shifted() {
		r.Patch = dmp.PatchToText(dmp.PatchMake(original, diffs))
	}
	return r
}

// firstShift walks runs of non-equal diffs. A run that deletes as many runes
// as it inserts is a substitution and keeps later positions aligned.
func firstShift(diffs []diffmatchpatch.Diff) int {
	pos := 0
	for i := 0; i < len(diffs); {
		if diffs[i].Type == diffmatchpatch.DiffEqual {
			pos += utf8.RuneCountInString(diffs[i].Text)
			i++
			continue
		}

		start, del, ins := pos, 0, 0
		for ; i < len(diffs) && diffs[i].Type != diffmatchpatch.DiffEqual; i++ {
			n := utf8.RuneCountInString(diffs[i].Text)
			if diffs[i].Type == diffmatchpatch.DiffDelete {
				del += n
			} else {
				ins += n
			}
		}
		if del != ins {
			return start
		}
		pos += del
	}
	return -1
}
