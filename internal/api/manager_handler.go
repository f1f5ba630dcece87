package api

import (
	"errors"
	"net/http"

	"alcyxob/fitness-dashboard/internal/domain"
	"alcyxob/fitness-dashboard/internal/repository"
	"alcyxob/fitness-dashboard/internal/service"
	"alcyxob/fitness-dashboard/internal/views"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const activityLimit = 50

// ManagerHandler serves /dashboard/manager.
type ManagerHandler struct {
	gateway      service.Gateway
	formService  service.FormService
	auditRepo    repository.AuditRepository
	auditEnabled bool
}

// NewManagerHandler creates a ManagerHandler. A nil audit repository hides the activity log.
func NewManagerHandler(gw service.Gateway, formService service.FormService, auditRepo repository.AuditRepository) *ManagerHandler {
	if auditRepo == nil {
		auditRepo = repository.NopAuditRepository{}
	}
	_, nop := auditRepo.(repository.NopAuditRepository)
	return &ManagerHandler{gateway: gw, formService: formService, auditRepo: auditRepo, auditEnabled: !nop}
}

// ListTrainers handles GET /dashboard/manager/trainer.
func (h *ManagerHandler) ListTrainers(c *gin.Context) {
	creds := credentials(c)
	trainers, err := h.gateway.ListUsers(c.Request.Context(), creds.Token, domain.RolePersonalTrainer)
	if err != nil {
		renderLoadError(c, "trainers", err)
		return
	}
	p := newPage(c, "Trainers")
	p.Data = views.UsersData{
		Heading:     "Trainers",
		Users:       trainers,
		CreatePath:  "/dashboard/manager/trainer/create",
		CreateLabel: "Add trainer",
	}
	c.HTML(http.StatusOK, views.PageUsers, p)
}

func (h *ManagerHandler) trainerForm(c *gin.Context) views.Page {
	p := newPage(c, "Add trainer")
	p.Data = views.UserFormData{
		Heading:     "Add trainer",
		Action:      "/dashboard/manager/trainer/create",
		AccountType: domain.RolePersonalTrainer,
		CancelPath:  "/dashboard/manager/trainer",
	}
	return p
}

// NewTrainer handles GET /dashboard/manager/trainer/create.
func (h *ManagerHandler) NewTrainer(c *gin.Context) {
	c.HTML(http.StatusOK, views.PageUserForm, h.trainerForm(c))
}

// CreateTrainer handles POST /dashboard/manager/trainer/create.
func (h *ManagerHandler) CreateTrainer(c *gin.Context) {
	submitUser(c, h.formService, h.trainerForm(c))
}

// Activity handles GET /dashboard/manager/activity. ?actor=<userId> narrows
// the log to one user.
func (h *ManagerHandler) Activity(c *gin.Context) {
	var (
		entries []domain.AuditEntry
		err     error
	)
	if c.Query("actor") != "" {
		actorID, qerr := queryID(c, "actor")
		if qerr != nil {
			renderError(c, http.StatusBadRequest, "Unknown user.", qerr)
			return
		}
		entries, err = h.auditRepo.ListByActor(c.Request.Context(), actorID, activityLimit)
	} else {
		entries, err = h.auditRepo.ListRecent(c.Request.Context(), activityLimit)
	}
	if err != nil {
		renderError(c, http.StatusInternalServerError, "Could not load the activity log.", err)
		return
	}
	p := newPage(c, "Activity")
	p.Data = views.ActivityData{Entries: entries, Enabled: h.auditEnabled}
	c.HTML(http.StatusOK, views.PageActivity, p)
}

// ActivityEntry handles GET /dashboard/manager/activity/:id.
func (h *ManagerHandler) ActivityEntry(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		renderError(c, http.StatusBadRequest, "Unknown activity entry.", err)
		return
	}
	entry, err := h.auditRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(c, http.StatusNotFound, "Activity entry not found.", nil)
			return
		}
		renderError(c, http.StatusInternalServerError, "Could not load the activity log.", err)
		return
	}
	p := newPage(c, "Activity entry")
	p.Data = views.AuditEntryData{Entry: entry}
	c.HTML(http.StatusOK, views.PageAuditEntry, p)
}

// submitUser runs the create-account pipeline. The account type is fixed by
// the creator's role whatever the browser sent.
func submitUser(c *gin.Context, forms service.FormService, formPage views.Page) {
	if err := c.Request.ParseForm(); err != nil {
		renderError(c, http.StatusBadRequest, "The form could not be read.", err)
		return
	}
	creds := credentials(c)
	if role, ok := service.NewAccountRole(creds.Claims.Role); ok {
		c.Request.PostForm.Set("accountType", string(role))
	}
	out := forms.CreateUser(c.Request.Context(), creds, c.Request.PostForm)
	applyOutcome(c, out, views.PageUserForm, formPage)
}
