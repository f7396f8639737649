package domain

import (
	"bytes"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// Sentinel replaces every blanked character in a redacted problem file.
const Sentinel = '_'

// BlankMap maps a character (rune) position to the original character found there.
// It is built once per round and consumed once by verification.
type BlankMap map[int]rune

// Mismatch is a blank the user filled with the wrong character.
type Mismatch struct {
	Position int  `json:"position"`
	Expected rune `json:"expected"`
	Actual   rune `json:"actual"`
}

type mismatchJSON struct {
	Position int             `json:"position"`
	Expected json.RawMessage `json:"expected"`
	Actual   json.RawMessage `json:"actual"`
}

// MarshalJSON writes Expected and Actual as one-character strings.
func (m Mismatch) MarshalJSON() ([]byte, error) {
	exp, err := json.Marshal(string(m.Expected))
	if err != nil {
		return nil, err
	}
	act, err := json.Marshal(string(m.Actual))
	if err != nil {
		return nil, err
	}
	return json.Marshal(mismatchJSON{Position: m.Position, Expected: exp, Actual: act})
}

// UnmarshalJSON reads characters as strings, or as code points in older
// session files.
func (m *Mismatch) UnmarshalJSON(b []byte) error {
	var raw mismatchJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	exp, err := decodeChar(raw.Expected)
	if err != nil {
		return err
	}
	act, err := decodeChar(raw.Actual)
	if err != nil {
		return err
	}
	*m = Mismatch{Position: raw.Position, Expected: exp, Actual: act}
	return nil
}

func decodeChar(raw json.RawMessage) (rune, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	if raw[0] != '"' {
		var n int32
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// RoundResult is the outcome of verifying one edited problem file.
type RoundResult struct {
	Correct    int        `json:"correct"`
	Total      int        `json:"total"`
	Mismatches []Mismatch `json:"mismatches"`
}

// Skipped reports how many blanks fell outside the edited text
// (the user shortened the file) and were neither correct nor mismatched.
func (r RoundResult) Skipped() int {
	n := r.Total - r.Correct - len(r.Mismatches)
	if n < 0 {
		return 0
	}
	return n
}
