package views

import "alcyxob/fitness-dashboard/internal/domain"

// UsersData lists trainers or clients.
type UsersData struct {
	Heading     string
	Users       []domain.User
	CreatePath  string
	CreateLabel string
	// TrainerAction links each client row to the create-workout form.
	TrainerAction bool
}

// UserFormData drives the create-account form. The account type is fixed by
// the creator's role and sent as a hidden field.
type UserFormData struct {
	Heading           string
	Action            string
	AccountType       domain.Role
	PersonalTrainerID int
	CancelPath        string
}

// WorkoutsData lists the trainer's workout programs.
type WorkoutsData struct {
	Programs   []domain.WorkoutProgram
	CreatePath string
}

// WorkoutFormData is the create-program form for one client.
type WorkoutFormData struct {
	ClientID int
	// Rows is the number of exercise rows shown.
	Rows int
}

// WorkoutData shows one program with its exercises.
type WorkoutData struct {
	Program         *domain.WorkoutProgram
	AddExercisePath string
}

// ExerciseFormData drives the add-exercise form. Action posts back to the program.
type ExerciseFormData struct {
	Program *domain.WorkoutProgram
	Action  string
}

// ProgramsData is the client's collapsible program list.
type ProgramsData struct {
	Items []ProgramItem
}

// ActivityData is the manager's view of the activity log. Enabled is false
// when no database is configured.
type ActivityData struct {
	Entries []domain.AuditEntry
	Enabled bool
}

// AuditEntryData shows a single activity log entry.
type AuditEntryData struct {
	Entry *domain.AuditEntry
}
