package editor

import (
	"regexp"
	"sort"
	"strconv"

	"trailhead/pkg/model"
)

var reTitleNumber = regexp.MustCompile(`^(\d+)[.)\s]*`)

// SortedActivities orders things-to-do entries for presentation: entries
// whose title starts with a number sort ascending by that number; entries
// without one come after all numbered entries; ties break on id. The order
// is recomputed on every call and never persisted.
func SortedActivities(activities map[string]model.Activity) []model.Activity {
	out := make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		ni, oki := titleNumber(out[i].Title)
		nj, okj := titleNumber(out[j].Title)

		switch {
		case oki && okj:
			if ni != nj {
				return ni < nj
			}
			return out[i].ID < out[j].ID
		case oki:
			return true
		case okj:
			return false
		default:
			return out[i].ID < out[j].ID
		}
	})

	return out
}

func titleNumber(title string) (int, bool) {
	m := reTitleNumber.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
