package repository

import (
	"alcyxob/fitness-dashboard/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// AuditRepository stores the activity log of form submissions.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AuditEntry, error)
	// ListRecent returns at most limit entries, newest first.
	ListRecent(ctx context.Context, limit int64) ([]domain.AuditEntry, error)
	// ListByActor returns the entries written by one user, newest first.
	ListByActor(ctx context.Context, actorID int, limit int64) ([]domain.AuditEntry, error)
}

// NopAuditRepository is used when no database is configured. Writes are
// dropped and reads return nothing.
type NopAuditRepository struct{}

func (NopAuditRepository) Create(context.Context, *domain.AuditEntry) (primitive.ObjectID, error) {
	return primitive.NilObjectID, nil
}

func (NopAuditRepository) GetByID(context.Context, primitive.ObjectID) (*domain.AuditEntry, error) {
	return nil, ErrNotFound
}

func (NopAuditRepository) ListRecent(context.Context, int64) ([]domain.AuditEntry, error) {
	return []domain.AuditEntry{}, nil
}

func (NopAuditRepository) ListByActor(context.Context, int, int64) ([]domain.AuditEntry, error) {
	return []domain.AuditEntry{}, nil
}
