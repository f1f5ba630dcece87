package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"alcyxob/fitness-dashboard/internal/domain"
	"alcyxob/fitness-dashboard/internal/gateway"
	"alcyxob/fitness-dashboard/internal/logging"
	"alcyxob/fitness-dashboard/internal/repository"
)

// MinPasswordLength is enforced on new accounts through the "password"
// validation alias and quoted in the message users see.
const MinPasswordLength = 6

const genericFailure = "An error occurred. Please try again."

// FormService validates dashboard forms and forwards them to the remote API.
type FormService interface {
	CreateUser(ctx context.Context, creds Credentials, form url.Values) Outcome
	CreateWorkout(ctx context.Context, creds Credentials, form url.Values) Outcome
	AppendExercise(ctx context.Context, creds Credentials, programID int, form url.Values) Outcome
}

type formService struct {
	gateway Gateway
	audit   repository.AuditRepository
}

// NewFormService creates a FormService. A nil audit repository disables the activity log.
func NewFormService(gw Gateway, audit repository.AuditRepository) FormService {
	if audit == nil {
		audit = repository.NopAuditRepository{}
	}
	return &formService{gateway: gw, audit: audit}
}

// --- Create user ---

type createUserForm struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"email"`
	Password    string `json:"password" validate:"password"`
	AccountType string `json:"accountType" validate:"oneof=Manager PersonalTrainer Client"`
}

var createUserMessages = messages{
	"FirstName.required": "First name is required",
	"LastName.required":  "Last name is required",
	"Email.email":        "Invalid email address",
	"Password.password":  fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength),
	"AccountType.oneof":  "Please select a valid account type.",
}

// NewAccountRole is the only account type a creator may add from the dashboard:
// managers add trainers, trainers add clients.
func NewAccountRole(creator domain.Role) (domain.Role, bool) {
	switch creator {
	case domain.RoleManager:
		return domain.RolePersonalTrainer, true
	case domain.RolePersonalTrainer:
		return domain.RoleClient, true
	}
	return "", false
}

// UserCreatedPath is where the creator lands after adding an account. It depends
// only on the creator's role.
func UserCreatedPath(creator domain.Role) string {
	switch creator {
	case domain.RoleManager:
		return "/dashboard/manager/trainer"
	case domain.RolePersonalTrainer:
		return "/dashboard/personalTrainer/clients"
	}
	return "/dashboard"
}

// CreateUser validates a new account and posts it to the remote API.
func (s *formService) CreateUser(ctx context.Context, creds Credentials, form url.Values) Outcome {
	f := createUserForm{
		FirstName:   form.Get("firstName"),
		LastName:    form.Get("lastName"),
		Email:       form.Get("email"),
		Password:    form.Get("password"),
		AccountType: form.Get("accountType"),
	}
	errs := FieldErrors{}
	validateInto(&f, createUserMessages, errs)

	// The trainer id is checked even when other fields already failed, so the
	// user sees every problem at once.
	trainerID, problem := trainerFor(creds.Claims, domain.Role(f.AccountType), form.Get("personalTrainerId"))
	if problem != "" {
		errs.Add("personalTrainerId", problem)
	}
	if !errs.Empty() {
		return Invalid(errs)
	}

	// --- Form is valid, forward it ---
	req := gateway.CreateUserRequest{
		FirstName:         f.FirstName,
		LastName:          f.LastName,
		Email:             f.Email,
		Password:          f.Password,
		AccountType:       domain.Role(f.AccountType),
		PersonalTrainerID: trainerID,
	}
	err := s.gateway.CreateUser(ctx, creds.Token, req)
	s.record(ctx, creds, domain.ActionCreateUser, f.Email, err)
	if err != nil {
		return s.failure(ctx, "create user", err, func(status int) string {
			return fmt.Sprintf("Failed to create user. (Status: %d)", status)
		})
	}
	return Navigate(UserCreatedPath(creds.Claims.Role))
}

// trainerFor resolves the personalTrainerId of a new account. Only clients
// have a trainer; a trainer creating a client is that client's trainer unless
// the form names another one. A non-empty problem is the field message.
func trainerFor(creator domain.Claims, accountType domain.Role, raw string) (id *int, problem string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if accountType == domain.RoleClient && creator.Role == domain.RolePersonalTrainer {
			self := creator.UserID
			return &self, ""
		}
		return nil, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil, "Personal trainer must be a valid user id"
	}
	if accountType != domain.RoleClient {
		return nil, "Only clients can be assigned a personal trainer"
	}
	return &n, ""
}

// --- Create workout ---

type exerciseForm struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Sets        int    `json:"sets" validate:"gte=0"`
	Repetitions int    `json:"repetitions" validate:"gte=0"`
	Time        string `json:"time"`
}

func (e exerciseForm) toDomain() domain.Exercise {
	return domain.Exercise{
		Name:        e.Name,
		Description: e.Description,
		Sets:        e.Sets,
		Repetitions: e.Repetitions,
		Time:        e.Time,
	}
}

type createWorkoutForm struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Exercises   []exerciseForm `json:"exercises" validate:"min=1,dive"`
	ClientID    int            `json:"clientId"`
}

var createWorkoutMessages = messages{
	"Name.required":             "Workout name is required",
	"Exercises.min":             "At least one exercise is required",
	"Exercises.Name.required":   "Exercise name is required",
	"Exercises.Sets.gte":        "Sets must be 0 or greater",
	"Exercises.Repetitions.gte": "Repetitions must be 0 or greater",
}

// WorkoutsPath lists the trainer's programs.
const WorkoutsPath = "/dashboard/personalTrainer/workouts"

// CreateWorkout validates a program with its exercises and posts it in one call.
func (s *formService) CreateWorkout(ctx context.Context, creds Credentials, form url.Values) Outcome {
	errs := FieldErrors{}
	f := createWorkoutForm{
		Name:        form.Get("name"),
		Description: form.Get("description"),
		Exercises:   parseExercises(form, errs),
	}
	clientID, err := strconv.Atoi(strings.TrimSpace(form.Get("clientId")))
	if err != nil {
		errs.Add("clientId", "Client ID must be a valid number")
	}
	f.ClientID = clientID

	// Parse problems are already in errs; validation adds to them rather than
	// replacing them.
	validateInto(&f, createWorkoutMessages, errs)
	if !errs.Empty() {
		return Invalid(errs)
	}

	// --- Form is valid, forward it ---
	exercises := make([]domain.Exercise, len(f.Exercises))
	for i, e := range f.Exercises {
		exercises[i] = e.toDomain()
	}
	err = s.gateway.CreateWorkoutProgram(ctx, creds.Token, gateway.CreateWorkoutRequest{
		Name:        f.Name,
		Description: f.Description,
		Exercises:   exercises,
		ClientID:    f.ClientID,
	})
	s.record(ctx, creds, domain.ActionCreateWorkout, f.Name, err)
	if err != nil {
		return s.failure(ctx, "create workout program", err, func(status int) string {
			return fmt.Sprintf("Failed to create workout. (Status: %d)", status)
		})
	}
	return Navigate(WorkoutsPath)
}

// parseExercises reads the exercise list either from the JSON "exercises"
// field or from repeated exercise* row fields. Rows left completely blank are
// ignored. Problems are reported under "exercises".
func parseExercises(form url.Values, errs FieldErrors) []exerciseForm {
	exercises := []exerciseForm{}
	if raw := strings.TrimSpace(form.Get("exercises")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &exercises); err != nil {
			errs.Add("exercises", "Exercises must be a valid list")
			return []exerciseForm{}
		}
		return exercises
	}

	names := form["exerciseName"]
	descriptions := form["exerciseDescription"]
	sets := form["exerciseSets"]
	reps := form["exerciseRepetitions"]
	times := form["exerciseTime"]

	rows := max(len(names), len(descriptions), len(sets), len(reps), len(times))
	for i := 0; i < rows; i++ {
		name, desc := at(names, i), at(descriptions, i)
		rawSets, rawReps, tm := at(sets, i), at(reps, i), at(times, i)
		if strings.TrimSpace(name+desc+rawSets+rawReps+tm) == "" {
			continue
		}
		e := exerciseForm{Name: name, Description: desc, Time: tm}
		var ok bool
		if e.Sets, ok = parseCount(rawSets); !ok {
			errs.Add("exercises", "Sets must be a whole number")
		}
		if e.Repetitions, ok = parseCount(rawReps); !ok {
			errs.Add("exercises", "Repetitions must be a whole number")
		}
		exercises = append(exercises, e)
	}
	return exercises
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// --- Append exercise ---

var appendExerciseMessages = messages{
	"Name.required":   "Exercise name is required",
	"Sets.gte":        "Sets must be 0 or greater",
	"Repetitions.gte": "Repetitions must be 0 or greater",
}

// WorkoutPath is the detail page of one program.
func WorkoutPath(programID int) string {
	return WorkoutsPath + "/workout?workoutId=" + strconv.Itoa(programID)
}

// AppendExercise adds one exercise to an existing program.
func (s *formService) AppendExercise(ctx context.Context, creds Credentials, programID int, form url.Values) Outcome {
	errs := FieldErrors{}
	e := exerciseForm{
		Name:        form.Get("name"),
		Description: form.Get("description"),
		Time:        form.Get("time"),
	}
	// Counts are parsed before validation so a non-number is reported as
	// such instead of failing gte=0.
	var ok bool
	if e.Sets, ok = parseCount(form.Get("sets")); !ok {
		errs.Add("sets", "Sets must be a whole number")
	}
	if e.Repetitions, ok = parseCount(form.Get("repetitions")); !ok {
		errs.Add("repetitions", "Repetitions must be a whole number")
	}
	validateInto(&e, appendExerciseMessages, errs)
	if !errs.Empty() {
		return Invalid(errs)
	}

	// --- Form is valid, forward it ---
	err := s.gateway.AppendExercise(ctx, creds.Token, programID, e.toDomain())
	s.record(ctx, creds, domain.ActionAppendExercise, fmt.Sprintf("program %d: %s", programID, e.Name), err)
	if err != nil {
		return s.failure(ctx, "append exercise", err, func(int) string {
			return "Failed to add exercise. Please try again."
		})
	}
	return Navigate(WorkoutPath(programID))
}

// --- shared ---

// failure logs the remote diagnostics and turns err into a user-facing outcome.
// The response body stays in the logs.
func (s *formService) failure(ctx context.Context, op string, err error, statusMessage func(int) string) Outcome {
	logger := logging.FromContext(ctx)
	var se *gateway.StatusError
	if errors.As(err, &se) {
		logger.Error("remote API rejected submission",
			"operation", op, "status", se.StatusCode, "response", se.Body,
			"unexpected_success", errors.Is(err, gateway.ErrUnexpectedStatus))
		logging.CaptureRemoteFailure(ctx, op, se.StatusCode, se.Body)
		return RemoteFailure(statusMessage(se.StatusCode))
	}
	logger.Error("remote API call failed", "operation", op, "error", err)
	return RemoteFailure(genericFailure)
}

// record appends the submission to the activity log. Audit problems are
// logged and never change the outcome.
func (s *formService) record(ctx context.Context, creds Credentials, action domain.AuditAction, target string, callErr error) {
	entry := &domain.AuditEntry{
		ActorID:   creds.Claims.UserID,
		ActorRole: creds.Claims.Role,
		Action:    action,
		Target:    target,
		RequestID: logging.RequestID(ctx),
	}
	switch status := gateway.StatusCode(callErr); {
	case callErr == nil:
		entry.Outcome = domain.AuditSucceeded
	case status != 0:
		entry.Outcome = domain.AuditRejected
		entry.StatusCode = status
	default:
		entry.Outcome = domain.AuditFailed
	}
	if _, err := s.audit.Create(ctx, entry); err != nil {
		logging.FromContext(ctx).Warn("failed to record audit entry", "action", action, "error", err)
	}
}
