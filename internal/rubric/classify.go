package rubric

import "strings"

// FromClassification derives a judgment for every criterion from the two
// category strings the model returns.
//
// Content criteria are met when their phrase occurs in the Y value. Quality
// criteria read the "+"-separated X segment that mentions them; a segment
// saying "not" is not met and one saying "some" is partially met. A quality
// criterion missing from X is not met, except relevance, which the model
// only mentions when it is lacking.
func FromClassification(x, y string) map[string]string {
	xLower := strings.ToLower(strings.TrimSpace(x))
	yLower := strings.ToLower(strings.TrimSpace(y))
	segments := splitCategory(xLower)

	out := make(map[string]string, len(criteria))
	for _, c := range criteria {
		switch c.Axis {
		case AxisContent:
			out[c.Name] = contentJudgment(c, yLower)
		case AxisQuality:
			out[c.Name] = qualityJudgment(c, segments)
		}
	}

	if strings.Contains(xLower, notRelevantToTheIdea) || strings.Contains(yLower, notRelevantToTheIdea) {
		out[RelevantToIdea] = NotMet
	}
	return out
}

func contentJudgment(c Criterion, y string) string {
	if strings.Contains(y, notRelevantToTheIdea) {
		return NotMet
	}
	for _, segment := range splitCategory(y) {
		if matches(c, segment) && !negated(segment) {
			return Met
		}
	}
	return NotMet
}

func qualityJudgment(c Criterion, segments []string) string {
	for _, segment := range segments {
		if matches(c, segment) {
			return judge(segment)
		}
	}
	if c.Name == RelevantToIdea {
		return Met
	}
	return NotMet
}

// judge reads the strength of one quality phrase.
func judge(segment string) string {
	switch {
	case negated(segment):
		return NotMet
	case hasWord(segment, "some"), hasWord(segment, "somewhat"), hasWord(segment, "fairly"), hasWord(segment, "partially"):
		return PartiallyMet
	default:
		return Met
	}
}

func negated(segment string) bool {
	return hasWord(segment, "not") || hasWord(segment, "no") || strings.Contains(segment, "lacks")
}

func matches(c Criterion, segment string) bool {
	for _, kw := range c.keywords {
		if strings.Contains(segment, kw) {
			return true
		}
	}
	return false
}

func hasWord(text, word string) bool {
	for _, f := range strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	}) {
		if f == word {
			return true
		}
	}
	return false
}

func splitCategory(value string) []string {
	parts := strings.Split(value, "+")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
