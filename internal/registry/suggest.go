package registry

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestions caps how many near-miss ids a NotFoundError carries.
const maxSuggestions = 3

// suggest returns registered ids within a small edit distance of id, closest
// first. Distance scales with the id's length so long plugin ids tolerate
// more typos than short command names.
func suggest(id string, known []string) []string {
	if id == "" || len(known) == 0 {
		return nil
	}
	limit := len(id) / 3
	if limit < 2 {
		limit = 2
	}

	type scored struct {
		id   string
		dist int
	}
	var close []scored
	for _, k := range known {
		d := levenshtein.ComputeDistance(strings.ToLower(id), strings.ToLower(k))
		if d <= limit {
			close = append(close, scored{id: k, dist: d})
		}
	}
	sort.Slice(close, func(i, j int) bool {
		if close[i].dist != close[j].dist {
			return close[i].dist < close[j].dist
		}
		return close[i].id < close[j].id
	})
	if len(close) > maxSuggestions {
		close = close[:maxSuggestions]
	}
	out := make([]string, len(close))
	for i, s := range close {
		out[i] = s.id
	}
	return out
}
