// Package sdg holds the fixed table of the 17 UN Sustainable Development Goals.
package sdg

import (
	"fmt"
	"strconv"
	"strings"
)

// Goal is one Sustainable Development Goal.
type Goal struct {
	Number int    `json:"number"`
	ID     string `json:"id"`
	Name   string `json:"name"`
}

// MaxSelection is the largest number of goals a student may pick at once.
const MaxSelection = 2

var names = [...]string{
	"No Poverty",
	"Zero Hunger",
	"Good Health and Well-being",
	"Quality Education",
	"Gender Equality",
	"Clean Water and Sanitation",
	"Affordable and Clean Energy",
	"Decent Work and Economic Growth",
	"Industry, Innovation and Infrastructure",
	"Reduced Inequalities",
	"Sustainable Cities and Communities",
	"Responsible Consumption and Production",
	"Climate Action",
	"Life Below Water",
	"Life on Land",
	"Peace, Justice and Strong Institutions",
	"Partnerships for the Goals",
}

// All returns the 17 goals in official order. The slice is a fresh copy.
func All() []Goal {
	goals := make([]Goal, len(names))
	for i, name := range names {
		goals[i] = Goal{Number: i + 1, ID: fmt.Sprintf("SDG%d", i+1), Name: name}
	}
	return goals
}

// Lookup resolves an identifier to a goal. Accepted forms are "SDG13",
// "sdg 13", "13" and the goal name in any letter case.
func Lookup(identifier string) (Goal, bool) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return Goal{}, false
	}

	numeric := id
	if len(id) >= 3 && strings.EqualFold(id[:3], "sdg") {
		numeric = strings.TrimSpace(id[3:])
	}
	if n, err := strconv.Atoi(numeric); err == nil {
		if n < 1 || n > len(names) {
			return Goal{}, false
		}
		return Goal{Number: n, ID: fmt.Sprintf("SDG%d", n), Name: names[n-1]}, true
	}

	for i, name := range names {
		if strings.EqualFold(name, id) {
			return Goal{Number: i + 1, ID: fmt.Sprintf("SDG%d", i+1), Name: name}, true
		}
	}
	return Goal{}, false
}

// IsKnown reports whether identifier resolves to a goal.
func IsKnown(identifier string) bool {
	_, ok := Lookup(identifier)
	return ok
}

// SelectionError describes why a goal selection was rejected.
type SelectionError struct {
	Identifier string
	Message    string
}

func (e *SelectionError) Error() string {
	if e.Identifier != "" {
		return fmt.Sprintf("invalid SDG selection %q: %s", e.Identifier, e.Message)
	}
	return fmt.Sprintf("invalid SDG selection: %s", e.Message)
}

// Resolve turns a selection of 1 to MaxSelection identifiers into goals,
// rejecting unknown identifiers and duplicates.
func Resolve(identifiers []string) ([]Goal, error) {
	if len(identifiers) == 0 {
		return nil, &SelectionError{Message: "select at least one SDG"}
	}
	if len(identifiers) > MaxSelection {
		return nil, &SelectionError{Message: fmt.Sprintf("select at most %d SDGs", MaxSelection)}
	}

	goals := make([]Goal, 0, len(identifiers))
	seen := make(map[int]bool, len(identifiers))
	for _, identifier := range identifiers {
		goal, ok := Lookup(identifier)
		if !ok {
			return nil, &SelectionError{Identifier: identifier, Message: "unknown goal"}
		}
		if seen[goal.Number] {
			return nil, &SelectionError{Identifier: identifier, Message: "selected more than once"}
		}
		seen[goal.Number] = true
		goals = append(goals, goal)
	}
	return goals, nil
}

// Names returns the display names of goals.
func Names(goals []Goal) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = g.Name
	}
	return out
}
