package views

import (
	"strconv"

	"alcyxob/fitness-dashboard/internal/domain"
)

// ProgramItem is a workout program as shown in a collapsible list.
type ProgramItem struct {
	domain.WorkoutProgram
	Expanded   bool
	Toggleable bool
	// ToggleHref expands the item, or collapses it when it is already expanded.
	ToggleHref string
}

// BuildProgramList decides which program is open. At most one item is
// expanded at a time. A list with a single program keeps it open and offers
// no toggle. expandedID of 0 means nothing was selected.
func BuildProgramList(programs []domain.WorkoutProgram, expandedID int, basePath string) []ProgramItem {
	items := make([]ProgramItem, len(programs))
	if len(programs) == 1 {
		items[0] = ProgramItem{WorkoutProgram: programs[0], Expanded: true}
		return items
	}
	for i, p := range programs {
		open := expandedID != 0 && p.WorkoutProgramID == expandedID
		href := basePath + "?expanded=" + strconv.Itoa(p.WorkoutProgramID)
		if open {
			href = basePath
		}
		items[i] = ProgramItem{WorkoutProgram: p, Expanded: open, Toggleable: true, ToggleHref: href}
	}
	return items
}
