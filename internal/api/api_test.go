package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"alcyxob/fitness-dashboard/internal/domain"
	"alcyxob/fitness-dashboard/internal/gateway/gatewaytest"
	"alcyxob/fitness-dashboard/internal/repository"
	"alcyxob/fitness-dashboard/internal/service"
	"alcyxob/fitness-dashboard/internal/session"
	"alcyxob/fitness-dashboard/internal/session/sessiontest"
	"alcyxob/fitness-dashboard/internal/views"

	"github.com/gin-gonic/gin"
)

var (
	manager = domain.Claims{Role: domain.RoleManager, UserID: 1, DisplayName: "Maria"}
	trainer = domain.Claims{Role: domain.RolePersonalTrainer, UserID: 7, DisplayName: "Tom"}
	client  = domain.Claims{Role: domain.RoleClient, UserID: 42, DisplayName: "Cleo"}
)

func newTestRouter(t *testing.T, gw *gatewaytest.Fake, audit repository.AuditRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	renderer, err := views.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if audit == nil {
		audit = repository.NopAuditRepository{}
	}
	router := NewRouter(renderer, false)
	SetupRoutes(router, gw, service.NewAuthService(gw), service.NewFormService(gw, audit), audit, false)
	return router
}

// request performs a request carrying the session of claims, if any.
func request(t *testing.T, h http.Handler, method, target string, claims *domain.Claims, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if claims != nil {
		req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: sessiontest.Token(t, *claims)})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303 (body %s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
}

// --- Gate ---

func TestGate_NoSession(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	for _, path := range []string{"/dashboard", "/dashboard/manager", "/dashboard/client/programs", "/dashboard/personalTrainer/workouts"} {
		rec := request(t, router, http.MethodGet, path, nil, nil)
		assertRedirect(t, rec, "/login")
	}
}

func TestGate_WrongRole(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	tests := []struct {
		path   string
		claims domain.Claims
	}{
		{"/dashboard/manager/trainer", trainer},
		{"/dashboard/manager", client},
		{"/dashboard/personalTrainer/clients", manager},
		{"/dashboard/client/programs", trainer},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := request(t, router, http.MethodGet, tt.path, &tt.claims, nil)
			assertRedirect(t, rec, "/")
		})
	}
}

func TestGate_UnreadableTokenIsNoSession(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/dashboard/manager", nil)
	req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: "garbage"})
	req.AddCookie(&http.Cookie{Name: session.RoleCookie, Value: "Manager"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assertRedirect(t, rec, "/login")
}

func TestGate_RoleCookieIsIgnored(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/dashboard/manager", nil)
	req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: sessiontest.Token(t, client)})
	req.AddCookie(&http.Cookie{Name: session.RoleCookie, Value: "Manager"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assertRedirect(t, rec, "/")
}

func TestPublicPages(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	for _, path := range []string{"/", "/login"} {
		rec := request(t, router, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s: missing request id", path)
		}
		if rec.Header().Get("X-Frame-Options") != "DENY" {
			t.Errorf("%s: missing security headers", path)
		}
	}
}

func TestDashboard_PerRole(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	tests := []struct {
		path   string
		claims domain.Claims
		link   string
	}{
		{"/dashboard/manager", manager, "/dashboard/manager/trainer"},
		{"/dashboard/personalTrainer", trainer, "/dashboard/personalTrainer/workouts"},
		{"/dashboard/client", client, "/dashboard/client/programs"},
		{"/dashboard", client, "/dashboard/client/programs"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := request(t, router, http.MethodGet, tt.path, &tt.claims, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, tt.claims.DisplayName) || !strings.Contains(body, tt.link) {
				t.Errorf("dashboard missing name or nav link %s", tt.link)
			}
			if rec.Header().Get("Cache-Control") != "no-store" {
				t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
			}
		})
	}
}

// --- Auth ---

func TestLogin(t *testing.T) {
	gw := &gatewaytest.Fake{LoginToken: sessiontest.Token(t, trainer)}
	router := newTestRouter(t, gw, nil)

	rec := request(t, router, http.MethodPost, "/login", nil, url.Values{"email": {"tom@example.com"}, "password": {"secret1"}})
	assertRedirect(t, rec, "/dashboard/personalTrainer")

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	if c := cookies[session.TokenCookie]; c == nil || c.Value != gw.LoginToken || !c.HttpOnly {
		t.Errorf("token cookie = %+v", c)
	}
	if c := cookies[session.RoleCookie]; c == nil || c.Value != "PersonalTrainer" {
		t.Errorf("role cookie = %+v", c)
	}
}

func TestLogin_Rejected(t *testing.T) {
	gw := &gatewaytest.Fake{LoginErr: gatewaytest.Reject("login", 401, "nope")}
	router := newTestRouter(t, gw, nil)

	rec := request(t, router, http.MethodPost, "/login", nil, url.Values{"email": {"tom@example.com"}, "password": {"wrong"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Invalid email or password.") {
		t.Error("missing login failure message")
	}
	if !strings.Contains(body, "tom@example.com") {
		t.Error("email should be kept in the form")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no cookies may be set on failure")
	}
}

func TestLoginForm_RedirectsSignedIn(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	rec := request(t, router, http.MethodGet, "/login", &manager, nil)
	assertRedirect(t, rec, "/dashboard/manager")
}

func TestLogout(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	rec := request(t, router, http.MethodPost, "/logout", &manager, url.Values{})
	assertRedirect(t, rec, "/")
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			t.Errorf("cookie %s not expired", c.Name)
		}
	}
}

// --- Manager ---

func TestManager_ListTrainers(t *testing.T) {
	gw := &gatewaytest.Fake{Users: []domain.User{
		{UserID: 2, FirstName: "Tom", LastName: "Trainer", AccountType: domain.RolePersonalTrainer},
		{UserID: 3, FirstName: "Cleo", LastName: "Client", AccountType: domain.RoleClient},
	}}
	router := newTestRouter(t, gw, nil)

	rec := request(t, router, http.MethodGet, "/dashboard/manager/trainer", &manager, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Tom Trainer") || strings.Contains(body, "Cleo Client") {
		t.Errorf("unexpected trainer list: %s", body)
	}
	if len(gw.Tokens) != 1 || gw.Tokens[0] != sessiontest.Token(t, manager) {
		t.Errorf("gateway not called with the session token: %v", gw.Tokens)
	}
}

func TestManager_CreateTrainer(t *testing.T) {
	gw := &gatewaytest.Fake{}
	router := newTestRouter(t, gw, nil)

	form := url.Values{
		"firstName":   {"Tom"},
		"lastName":    {"Trainer"},
		"email":       {"tom@example.com"},
		"password":    {"secret1"},
		"accountType": {"Manager"},
	}
	rec := request(t, router, http.MethodPost, "/dashboard/manager/trainer/create", &manager, form)
	assertRedirect(t, rec, "/dashboard/manager/trainer")

	if len(gw.CreatedUsers) != 1 || gw.CreatedUsers[0].AccountType != domain.RolePersonalTrainer {
		t.Fatalf("created = %+v, account type must follow the creator's role", gw.CreatedUsers)
	}
}

func TestManager_CreateTrainerInvalid(t *testing.T) {
	gw := &gatewaytest.Fake{}
	router := newTestRouter(t, gw, nil)

	form := url.Values{"firstName": {""}, "lastName": {"Trainer"}, "email": {"bad"}, "password": {"secret1"}}
	rec := request(t, router, http.MethodPost, "/dashboard/manager/trainer/create", &manager, form)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"First name is required", "Invalid email address", `value="Trainer"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "secret1") {
		t.Error("password echoed back into the form")
	}
	if len(gw.Tokens) != 0 {
		t.Error("gateway called on invalid input")
	}
}

func TestManager_CreateTrainerRemoteFailure(t *testing.T) {
	gw := &gatewaytest.Fake{WriteErr: gatewaytest.Reject("create user", 500, "stack trace here")}
	router := newTestRouter(t, gw, nil)

	form := url.Values{"firstName": {"Tom"}, "lastName": {"T"}, "email": {"tom@example.com"}, "password": {"secret1"}}
	rec := request(t, router, http.MethodPost, "/dashboard/manager/trainer/create", &manager, form)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Failed to create user. (Status: 500)") {
		t.Error("missing remote failure message")
	}
	if strings.Contains(body, "stack trace here") {
		t.Error("remote body leaked to the browser")
	}
}

func TestManager_Activity(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	rec := request(t, router, http.MethodGet, "/dashboard/manager/activity", &manager, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "not configured") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

// --- Trainer ---

func TestTrainer_CreateClientUsesOwnID(t *testing.T) {
	gw := &gatewaytest.Fake{}
	router := newTestRouter(t, gw, nil)

	form := url.Values{"firstName": {"Cleo"}, "lastName": {"C"}, "email": {"cleo@example.com"}, "password": {"secret1"}}
	rec := request(t, router, http.MethodPost, "/dashboard/personalTrainer/clients/create", &trainer, form)
	assertRedirect(t, rec, "/dashboard/personalTrainer/clients")

	req := gw.CreatedUsers[0]
	if req.AccountType != domain.RoleClient || req.PersonalTrainerID == nil || *req.PersonalTrainerID != trainer.UserID {
		t.Fatalf("created = %+v", req)
	}
}

func TestTrainer_CreateWorkoutLegDay(t *testing.T) {
	gw := &gatewaytest.Fake{}
	router := newTestRouter(t, gw, nil)

	form := url.Values{
		"name":      {"Leg Day"},
		"exercises": {`[{"name":"Squat","sets":3,"repetitions":10}]`},
		"clientId":  {"42"},
	}
	rec := request(t, router, http.MethodPost, "/dashboard/personalTrainer/workouts/create?userId=42", &trainer, form)
	assertRedirect(t, rec, "/dashboard/personalTrainer/workouts")
	if len(gw.CreatedWorkouts) != 1 || gw.CreatedWorkouts[0].ClientID != 42 {
		t.Fatalf("created = %+v", gw.CreatedWorkouts)
	}
}

func TestTrainer_CreateWorkoutNoExercises(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	form := url.Values{"name": {"Leg Day"}, "clientId": {"42"}}
	rec := request(t, router, http.MethodPost, "/dashboard/personalTrainer/workouts/create?userId=42", &trainer, form)
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "At least one exercise is required") {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestTrainer_NewWorkoutNeedsClient(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	rec := request(t, router, http.MethodGet, "/dashboard/personalTrainer/workouts/create", &trainer, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	rec = request(t, router, http.MethodGet, "/dashboard/personalTrainer/workouts/create?userId=42", &trainer, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `name="clientId" value="42"`) {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestTrainer_ShowWorkout(t *testing.T) {
	gw := &gatewaytest.Fake{Programs: []domain.WorkoutProgram{{
		WorkoutProgramID: 3, Name: "Leg Day", Description: "**heavy**", ClientID: 42,
		Exercises: []domain.Exercise{{Name: "Squat", Sets: 3, Repetitions: 10}},
	}}}
	router := newTestRouter(t, gw, nil)

	rec := request(t, router, http.MethodGet, "/dashboard/personalTrainer/workouts/workout?workoutId=3", &trainer, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Leg Day", "Squat", "<strong>heavy</strong>", "addexercise?workoutId=3"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	rec = request(t, router, http.MethodGet, "/dashboard/personalTrainer/workouts/workout?workoutId=99", &trainer, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing program status = %d", rec.Code)
	}
	rec = request(t, router, http.MethodGet, "/dashboard/personalTrainer/workouts/workout?workoutId=abc", &trainer, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", rec.Code)
	}
}

func TestTrainer_AppendExercise(t *testing.T) {
	gw := &gatewaytest.Fake{Programs: []domain.WorkoutProgram{{WorkoutProgramID: 3, Name: "Leg Day"}}}
	router := newTestRouter(t, gw, nil)

	rec := request(t, router, http.MethodPost, "/dashboard/personalTrainer/workouts/addexercise?workoutId=3", &trainer,
		url.Values{"name": {"Lunge"}, "sets": {"3"}, "repetitions": {"12"}})
	assertRedirect(t, rec, "/dashboard/personalTrainer/workouts/workout?workoutId=3")

	calls := len(gw.Tokens)
	rec = request(t, router, http.MethodPost, "/dashboard/personalTrainer/workouts/addexercise?workoutId=3", &trainer,
		url.Values{"name": {""}, "sets": {"x"}, "workoutName": {"Leg Day"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "Leg Day") || !strings.Contains(body, "Sets must be a whole number") {
		t.Errorf("unexpected form: %s", body)
	}
	if len(gw.Tokens) != calls {
		t.Errorf("invalid submission reached the gateway %d times", len(gw.Tokens)-calls)
	}
}

func TestTrainer_AppendExercise_InvalidWithoutName(t *testing.T) {
	gw := &gatewaytest.Fake{}
	router := newTestRouter(t, gw, nil)

	rec := request(t, router, http.MethodPost, "/dashboard/personalTrainer/workouts/addexercise?workoutId=3", &trainer,
		url.Values{"name": {""}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "workout #3") {
		t.Errorf("heading fallback missing: %s", body)
	}
	if len(gw.Tokens) != 0 {
		t.Errorf("gateway calls = %d, want 0", len(gw.Tokens))
	}
}

func TestTrainer_ListLoadError(t *testing.T) {
	gw := &gatewaytest.Fake{ReadErr: gatewaytest.Reject("list clients", 500, "")}
	router := newTestRouter(t, gw, nil)
	rec := request(t, router, http.MethodGet, "/dashboard/personalTrainer/clients", &trainer, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

// --- Client ---

func TestClient_Programs(t *testing.T) {
	gw := &gatewaytest.Fake{Programs: []domain.WorkoutProgram{
		{WorkoutProgramID: 1, Name: "Upper", Exercises: []domain.Exercise{{Name: "Bench"}}},
		{WorkoutProgramID: 2, Name: "Lower", Exercises: []domain.Exercise{{Name: "Squat"}}},
	}}
	router := newTestRouter(t, gw, nil)

	rec := request(t, router, http.MethodGet, "/dashboard/client/programs?expanded=2", &client, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Squat") || strings.Contains(body, "Bench") {
		t.Errorf("only the expanded program should list exercises: %s", body)
	}
	if !strings.Contains(body, "?expanded=1") {
		t.Error("collapsed program has no expand link")
	}
}

// --- CSRF ---

func TestCSRF_RejectsPostWithoutToken(t *testing.T) {
	gw := &gatewaytest.Fake{LoginToken: sessiontest.Token(t, manager)}
	router := newTestRouter(t, gw, nil)
	key := []byte(strings.Repeat("k", 32))
	h := CSRF(key, false, []string{"localhost:3000"})(router)

	rec := request(t, h, http.MethodPost, "/login", nil, url.Values{"email": {"a@b.c"}, "password": {"secret1"}})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	rec = request(t, h, http.MethodGet, "/login", nil, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "gorilla.csrf.Token") {
		t.Fatalf("login form lacks csrf field (status %d)", rec.Code)
	}
}
