// Package extract evaluates JSONPath expressions against stored session documents.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	json "github.com/goccy/go-json"
)

// ErrNoValue is returned when an expression matches nothing.
var ErrNoValue = errors.New("no value found")

// Query evaluates expr against the JSON document body and renders the match
// as text. Single-element matches are unwrapped; objects and multi-element
// arrays are rendered as compact JSON.
func Query(body []byte, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", errors.New("empty jsonpath expression")
	}

	doc, err := parseJSON(body)
	if err != nil {
		return "", fmt.Errorf("document is not valid JSON: %w", err)
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return "", fmt.Errorf("jsonpath %s: %w", expr, err)
	}
	if isEmptyValue(val) {
		return "", fmt.Errorf("jsonpath %s: %w", expr, ErrNoValue)
	}
	return toString(val)
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	if arr, ok := v.([]any); ok {
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool, int, int64, uint64:
		return fmt.Sprint(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}
