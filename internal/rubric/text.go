package rubric

import "strings"

// ParseText reads judgments from a free-text reply of "Criterion: judgment"
// lines. Criterion names match case-insensitively and the first line naming
// a criterion wins. found is the number of criteria located.
func ParseText(text string) (judgments map[string]string, found int) {
	judgments = make(map[string]string)

	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.Trim(key, " \t*-#•0123456789.)"))
		value = strings.TrimSpace(strings.Trim(strings.TrimSpace(value), "*"))
		if value == "" {
			continue
		}

		c, ok := longestNameIn(key)
		if !ok {
			continue
		}
		if _, seen := judgments[c.Name]; seen {
			continue
		}
		judgments[c.Name] = value
	}
	return judgments, len(judgments)
}

// longestNameIn finds the criterion whose full name occurs in key, preferring
// the longest name when several do.
func longestNameIn(key string) (Criterion, bool) {
	var best Criterion
	for _, c := range criteria {
		if strings.Contains(key, strings.ToLower(c.Name)) && len(c.Name) > len(best.Name) {
			best = c
		}
	}
	return best, best.Name != ""
}
