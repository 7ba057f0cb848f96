package apiclient

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// NormalizeQuestions maps a generate-questions response body to questions.
//
// Each element of "questions" is read with one precedence order:
//  1. an object's "text" field, when present and not null
//  2. an object's "question" field, when present and not null
//  3. a bare string element as-is
//  4. any other element as its raw JSON
//
// The ID is the object's "id" when it is an integer or an integer string,
// else the 1-based position.
// A body without a "questions" array yields an empty slice.
func NormalizeQuestions(body []byte) []Question {
	out := []Question{}
	items := gjson.GetBytes(body, "questions")
	if !items.IsArray() {
		return out
	}
	items.ForEach(func(_, item gjson.Result) bool {
		q := Question{ID: len(out) + 1, Text: questionText(item)}
		if item.IsObject() {
			if id, ok := questionID(item.Get("id")); ok {
				q.ID = id
			}
		}
		out = append(out, q)
		return true
	})
	return out
}

func questionID(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		if v.Num != float64(int(v.Num)) {
			return 0, false
		}
		return int(v.Num), true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		return n, err == nil
	}
	return 0, false
}

func questionText(item gjson.Result) string {
	if item.IsObject() {
		for _, field := range []string{"text", "question"} {
			if v := item.Get(field); v.Exists() && v.Type != gjson.Null {
				return v.String()
			}
		}
		return item.Raw
	}
	if item.Type == gjson.String {
		return item.String()
	}
	return item.Raw
}
