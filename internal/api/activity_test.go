package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"alcyxob/fitness-dashboard/internal/domain"
	"alcyxob/fitness-dashboard/internal/gateway/gatewaytest"
	"alcyxob/fitness-dashboard/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryAudit struct {
	entries []domain.AuditEntry
}

func (m *memoryAudit) Create(_ context.Context, e *domain.AuditEntry) (primitive.ObjectID, error) {
	e.ID = primitive.NewObjectID()
	m.entries = append([]domain.AuditEntry{*e}, m.entries...)
	return e.ID, nil
}

func (m *memoryAudit) GetByID(_ context.Context, id primitive.ObjectID) (*domain.AuditEntry, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryAudit) ListRecent(_ context.Context, limit int64) ([]domain.AuditEntry, error) {
	return m.entries[:min(int(limit), len(m.entries))], nil
}

func (m *memoryAudit) ListByActor(_ context.Context, actorID int, _ int64) ([]domain.AuditEntry, error) {
	out := []domain.AuditEntry{}
	for _, e := range m.entries {
		if e.ActorID == actorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestActivity_RecordsSubmissions(t *testing.T) {
	audit := &memoryAudit{entries: []domain.AuditEntry{{
		ActorID: 9, ActorRole: domain.RolePersonalTrainer, Action: domain.ActionAppendExercise,
		Target: "older entry", Outcome: domain.AuditSucceeded, At: time.Now(),
	}}}
	gw := &gatewaytest.Fake{WriteErr: gatewaytest.Reject("create user", 409, "dup")}
	router := newTestRouter(t, gw, audit)

	form := map[string][]string{"firstName": {"Tom"}, "lastName": {"T"}, "email": {"tom@example.com"}, "password": {"secret1"}}
	request(t, router, http.MethodPost, "/dashboard/manager/trainer/create", &manager, form)

	rec := request(t, router, http.MethodGet, "/dashboard/manager/activity", &manager, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"tom@example.com", "rejected (409)", "older entry"} {
		if !strings.Contains(body, want) {
			t.Errorf("activity missing %q", want)
		}
	}

	rec = request(t, router, http.MethodGet, "/dashboard/manager/activity?actor=1", &manager, nil)
	body = rec.Body.String()
	if !strings.Contains(body, "tom@example.com") || strings.Contains(body, "older entry") {
		t.Errorf("actor filter not applied: %s", body)
	}

	rec = request(t, router, http.MethodGet, "/dashboard/manager/activity?actor=x", &manager, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad actor status = %d", rec.Code)
	}
}

func TestActivity_Entry(t *testing.T) {
	audit := &memoryAudit{}
	gw := &gatewaytest.Fake{}
	router := newTestRouter(t, gw, audit)

	form := map[string][]string{"firstName": {"Tom"}, "lastName": {"T"}, "email": {"tom@example.com"}, "password": {"secret1"}}
	request(t, router, http.MethodPost, "/dashboard/manager/trainer/create", &manager, form)
	if len(audit.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(audit.entries))
	}
	id := audit.entries[0].ID.Hex()

	rec := request(t, router, http.MethodGet, "/dashboard/manager/activity", &manager, nil)
	if !strings.Contains(rec.Body.String(), "/dashboard/manager/activity/"+id) {
		t.Errorf("activity list does not link to entry %s", id)
	}

	rec = request(t, router, http.MethodGet, "/dashboard/manager/activity/"+id, &manager, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, want := range []string{"user.create", "tom@example.com", "succeeded"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("entry page missing %q", want)
		}
	}

	tests := []struct {
		name string
		id   string
		want int
	}{
		{"unknown", primitive.NewObjectID().Hex(), http.StatusNotFound},
		{"malformed", "not-an-id", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(t, router, http.MethodGet, "/dashboard/manager/activity/"+tt.id, &manager, nil)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	rec = request(t, router, http.MethodGet, "/dashboard/manager/activity/"+id, &trainer, nil)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("trainer status = %d, want redirect", rec.Code)
	}
}

func TestActivity_EntryWithoutDatabase(t *testing.T) {
	router := newTestRouter(t, &gatewaytest.Fake{}, nil)
	rec := request(t, router, http.MethodGet, "/dashboard/manager/activity/"+primitive.NewObjectID().Hex(), &manager, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
