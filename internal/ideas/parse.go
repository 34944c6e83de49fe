package ideas

import (
	"regexp"
	"strings"
)

var (
	numberedMarker = regexp.MustCompile(`^\d+[.)]\s+`)
	bulletMarker   = regexp.MustCompile(`^[-*•]\s+`)
)

// ParseIdeas splits a model reply into individual ideas.
//
// When the reply is a list, only list items are kept, with their markers and
// bold markup removed; numbered items win over bullets so nested bullets stay
// out. A reply with no list markers yields one idea per non-empty line.
func ParseIdeas(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		if line != "" {
			lines = append(lines, line)
		}
	}

	if items := listItems(lines, numberedMarker); len(items) > 0 {
		return items
	}
	if items := listItems(lines, bulletMarker); len(items) > 0 {
		return items
	}
	if lines == nil {
		return []string{}
	}
	return lines
}

func listItems(lines []string, marker *regexp.Regexp) []string {
	var items []string
	for _, line := range lines {
		loc := marker.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if item := strings.TrimSpace(line[loc[1]:]); item != "" {
			items = append(items, item)
		}
	}
	return items
}
