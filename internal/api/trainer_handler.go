package api

import (
	"net/http"
	"strconv"

	"alcyxob/fitness-dashboard/internal/domain"
	"alcyxob/fitness-dashboard/internal/service"
	"alcyxob/fitness-dashboard/internal/views"

	"github.com/gin-gonic/gin"
)

const (
	workoutsPath = service.WorkoutsPath
	exerciseRows = 5
)

// TrainerHandler serves /dashboard/personalTrainer.
type TrainerHandler struct {
	gateway     service.Gateway
	formService service.FormService
}

// NewTrainerHandler creates a TrainerHandler.
func NewTrainerHandler(gw service.Gateway, formService service.FormService) *TrainerHandler {
	return &TrainerHandler{gateway: gw, formService: formService}
}

// ListClients handles GET /dashboard/personalTrainer/clients.
func (h *TrainerHandler) ListClients(c *gin.Context) {
	creds := credentials(c)
	clients, err := h.gateway.ListClients(c.Request.Context(), creds.Token)
	if err != nil {
		renderLoadError(c, "clients", err)
		return
	}
	p := newPage(c, "Clients")
	p.Data = views.UsersData{
		Heading:       "Clients",
		Users:         clients,
		CreatePath:    "/dashboard/personalTrainer/clients/create",
		CreateLabel:   "Add client",
		TrainerAction: true,
	}
	c.HTML(http.StatusOK, views.PageUsers, p)
}

func (h *TrainerHandler) clientForm(c *gin.Context) views.Page {
	p := newPage(c, "Add client")
	p.Data = views.UserFormData{
		Heading:           "Add client",
		Action:            "/dashboard/personalTrainer/clients/create",
		AccountType:       domain.RoleClient,
		PersonalTrainerID: credentials(c).Claims.UserID,
		CancelPath:        "/dashboard/personalTrainer/clients",
	}
	return p
}

// NewClient handles GET /dashboard/personalTrainer/clients/create.
func (h *TrainerHandler) NewClient(c *gin.Context) {
	c.HTML(http.StatusOK, views.PageUserForm, h.clientForm(c))
}

// CreateClient handles POST /dashboard/personalTrainer/clients/create.
func (h *TrainerHandler) CreateClient(c *gin.Context) {
	submitUser(c, h.formService, h.clientForm(c))
}

// ListWorkouts handles GET /dashboard/personalTrainer/workouts.
func (h *TrainerHandler) ListWorkouts(c *gin.Context) {
	creds := credentials(c)
	programs, err := h.gateway.ListWorkoutPrograms(c.Request.Context(), creds.Token)
	if err != nil {
		renderLoadError(c, "workout programs", err)
		return
	}
	p := newPage(c, "Workouts")
	p.Data = views.WorkoutsData{Programs: programs, CreatePath: "/dashboard/personalTrainer/clients"}
	c.HTML(http.StatusOK, views.PageWorkouts, p)
}

func (h *TrainerHandler) workoutForm(c *gin.Context, clientID, rows int) views.Page {
	p := newPage(c, "Create workout")
	p.Data = views.WorkoutFormData{ClientID: clientID, Rows: max(rows, exerciseRows)}
	return p
}

// NewWorkout handles GET /dashboard/personalTrainer/workouts/create?userId=<client>.
func (h *TrainerHandler) NewWorkout(c *gin.Context) {
	clientID, err := queryID(c, "userId")
	if err != nil {
		renderError(c, http.StatusBadRequest, "Pick a client to create a workout for.", err)
		return
	}
	c.HTML(http.StatusOK, views.PageWorkoutForm, h.workoutForm(c, clientID, exerciseRows))
}

// CreateWorkout handles POST /dashboard/personalTrainer/workouts/create.
func (h *TrainerHandler) CreateWorkout(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		renderError(c, http.StatusBadRequest, "The form could not be read.", err)
		return
	}
	clientID, _ := strconv.Atoi(c.Request.PostForm.Get("clientId"))
	p := h.workoutForm(c, clientID, len(c.Request.PostForm["exerciseName"]))

	out := h.formService.CreateWorkout(c.Request.Context(), credentials(c), c.Request.PostForm)
	applyOutcome(c, out, views.PageWorkoutForm, p)
}

// ShowWorkout handles GET /dashboard/personalTrainer/workouts/workout?workoutId=<id>.
func (h *TrainerHandler) ShowWorkout(c *gin.Context) {
	program, ok := h.loadProgram(c)
	if !ok {
		return
	}
	p := newPage(c, program.Name)
	p.Data = views.WorkoutData{Program: program, AddExercisePath: addExercisePath(program.WorkoutProgramID)}
	c.HTML(http.StatusOK, views.PageWorkout, p)
}

// NewExercise handles GET /dashboard/personalTrainer/workouts/addexercise?workoutId=<id>.
func (h *TrainerHandler) NewExercise(c *gin.Context) {
	program, ok := h.loadProgram(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, views.PageExerciseForm, exerciseForm(c, program))
}

// AppendExercise handles POST /dashboard/personalTrainer/workouts/addexercise?workoutId=<id>.
func (h *TrainerHandler) AppendExercise(c *gin.Context) {
	programID, err := queryID(c, "workoutId")
	if err != nil {
		renderError(c, http.StatusBadRequest, "Unknown workout program.", err)
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		renderError(c, http.StatusBadRequest, "The form could not be read.", err)
		return
	}
	out := h.formService.AppendExercise(c.Request.Context(), credentials(c), programID, c.Request.PostForm)
	if out.Kind == service.OutcomeNavigate {
		c.Redirect(http.StatusSeeOther, out.Redirect)
		return
	}

	// The form is shown again without another round trip: the heading comes
	// from the name the form carried.
	program := &domain.WorkoutProgram{WorkoutProgramID: programID, Name: c.Request.PostForm.Get("workoutName")}
	if program.Name == "" {
		program.Name = "workout #" + strconv.Itoa(programID)
	}
	applyOutcome(c, out, views.PageExerciseForm, exerciseForm(c, program))
}

func (h *TrainerHandler) loadProgram(c *gin.Context) (*domain.WorkoutProgram, bool) {
	programID, err := queryID(c, "workoutId")
	if err != nil {
		renderError(c, http.StatusBadRequest, "Unknown workout program.", err)
		return nil, false
	}
	program, err := h.gateway.GetWorkoutProgram(c.Request.Context(), credentials(c).Token, programID)
	if err != nil {
		renderLoadError(c, "workout program", err)
		return nil, false
	}
	return program, true
}

func exerciseForm(c *gin.Context, program *domain.WorkoutProgram) views.Page {
	p := newPage(c, "Add exercise")
	p.Data = views.ExerciseFormData{Program: program, Action: addExercisePath(program.WorkoutProgramID)}
	return p
}

func addExercisePath(programID int) string {
	return workoutsPath + "/addexercise?workoutId=" + strconv.Itoa(programID)
}
