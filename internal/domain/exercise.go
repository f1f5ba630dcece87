// internal/domain/exercise.go
package domain

// Exercise is one entry of a WorkoutProgram. It has no identity of its own.
type Exercise struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Sets        int    `json:"sets"`
	Repetitions int    `json:"repetitions"`
	Time        string `json:"time"` // optional duration annotation, e.g. "30s"
}
