package goquery

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/SACCSF/linkedin"
)

// embeddedEntities returns the objects of the "included" arrays found in
// the JSON payloads LinkedIn embeds in <code> elements, in document order.
// Blocks that are not JSON are ignored.
func embeddedEntities(doc *goquery.Document) []map[string]any {
	var entities []map[string]any
	for _, code := range doc.Find("code").EachIter() {
		text := strings.TrimSpace(code.Text())
		if !strings.HasPrefix(text, "{") {
			continue
		}
		var payload struct {
			Included []json.RawMessage `json:"included"`
		}
		if err := json.Unmarshal([]byte(text), &payload); err != nil {
			continue
		}
		for _, raw := range payload.Included {
			var entity map[string]any
			if err := json.Unmarshal(raw, &entity); err != nil || entity == nil {
				continue
			}
			entities = append(entities, entity)
		}
	}
	return entities
}

// chooseEntity returns the entity resolving the most paths to a non-empty
// value. The earliest entity wins ties. Returns nil if no entity resolves
// any path.
func chooseEntity(entities []map[string]any, paths [][]string) map[string]any {
	var best map[string]any
	bestScore := 0
	for _, entity := range entities {
		score := 0
		for _, path := range paths {
			if lookupString(entity, path) != "" {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = entity, score
		}
	}
	return best
}

// lookupString follows path through nested objects and arrays and renders
// the value found as a string. Numeric segments index arrays.
func lookupString(entity map[string]any, path []string) string {
	var v any = entity
	for _, seg := range path {
		switch node := v.(type) {
		case map[string]any:
			v = node[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return ""
			}
			v = node[i]
		default:
			return ""
		}
	}
	return stringify(v)
}

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return linkedin.CollapseSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, linkedin.CommaDelimiter)
	case map[string]any:
		// LinkedIn wraps display strings as {"text": "..."}.
		return stringify(v["text"])
	}
	return ""
}
