package domain

// WorkoutProgram is a named, ordered list of exercises assigned to one client.
// Exercise order is display order.
type WorkoutProgram struct {
	WorkoutProgramID int        `json:"workoutProgramId"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Exercises        []Exercise `json:"exercises"`
	ClientID         int        `json:"clientId"`
}
