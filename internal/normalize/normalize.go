// Package normalize turns raw LLM completion text into the canonical AnalysisResult.
//
// Locating JSON is deliberately loose: markdown fences are stripped and the
// candidate runs from the first '{' to the last '}', with no nesting check.
// Shaping is strict: every field of the result is always populated.
package normalize

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/amishk599/lexiroute/internal/model"
)

var (
	leadingJSONFence = regexp.MustCompile("(?i)^```json\\s*")
	leadingFence     = regexp.MustCompile("^```\\s*")
	trailingFence    = regexp.MustCompile("\\s*```$")
)

// Normalize recovers an AnalysisResult from raw provider text. It fails with
// *model.ParseError only when no JSON object can be found or the candidate is
// not valid JSON; once parsed, coercion never fails.
func Normalize(raw string) (model.AnalysisResult, error) {
	text := stripFences(strings.TrimSpace(raw))

	candidate, ok := extractObject(text)
	if !ok {
		return model.AnalysisResult{}, &model.ParseError{Message: "Could not parse AI response as JSON"}
	}

	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return model.AnalysisResult{}, &model.ParseError{
			Message: "Failed to parse AI response: " + err.Error(),
			Err:     err,
		}
	}

	return Coerce(parsed), nil
}

func stripFences(s string) string {
	s = leadingJSONFence.ReplaceAllString(s, "")
	s = leadingFence.ReplaceAllString(s, "")
	return trailingFence.ReplaceAllString(s, "")
}

// extractObject returns the span from the first '{' through the last '}'.
func extractObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// Coerce maps any decoded JSON value onto the canonical shape. Falsy values
// (absent, null, "", false, 0) become empty strings; a non-array keywords value
// becomes an empty list; the list is truncated to model.MaxKeywords.
func Coerce(v any) model.AnalysisResult {
	obj, _ := v.(map[string]any)

	result := model.AnalysisResult{
		Translation: text(obj["translation"]),
		Keywords:    []model.KeywordEntry{},
	}

	items, _ := obj["keywords"].([]any)
	for _, item := range items {
		if len(result.Keywords) == model.MaxKeywords {
			break
		}
		fields, _ := item.(map[string]any)
		result.Keywords = append(result.Keywords, model.KeywordEntry{
			Word:     text(fields["word"]),
			Phonetic: text(fields["phonetic"]),
			Roots:    text(fields["roots"]),
			Origin:   text(fields["origin"]),
			Meaning:  text(fields["meaning"]),
		})
	}

	return result
}

// text renders a decoded JSON value as a string field.
func text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
		return "true"
	case float64:
		if val == 0 {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
