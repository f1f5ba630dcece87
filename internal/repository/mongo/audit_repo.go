package mongo

import (
	"alcyxob/fitness-dashboard/internal/domain"
	"alcyxob/fitness-dashboard/internal/repository"
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AuditCollectionName = "audit_log"

// mongoAuditRepository implements repository.AuditRepository
type mongoAuditRepository struct {
	collection *mongo.Collection
}

// NewMongoAuditRepository creates an audit repository on db.
func NewMongoAuditRepository(db *mongo.Database) repository.AuditRepository {
	return &mongoAuditRepository{
		collection: db.Collection(AuditCollectionName),
	}
}

// Create inserts an entry. The id and timestamp are assigned here when unset.
func (r *mongoAuditRepository) Create(ctx context.Context, entry *domain.AuditEntry) (primitive.ObjectID, error) {
	if entry.Action == "" || entry.Outcome == "" {
		return primitive.NilObjectID, errors.New("audit entry requires action and outcome")
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted audit ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single entry.
func (r *mongoAuditRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AuditEntry, error) {
	var entry domain.AuditEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// ListRecent returns the newest entries first.
func (r *mongoAuditRepository) ListRecent(ctx context.Context, limit int64) ([]domain.AuditEntry, error) {
	return r.find(ctx, bson.M{}, limit)
}

// ListByActor returns the newest entries written by actorID.
func (r *mongoAuditRepository) ListByActor(ctx context.Context, actorID int, limit int64) ([]domain.AuditEntry, error) {
	return r.find(ctx, bson.M{"actorId": actorID}, limit)
}

func (r *mongoAuditRepository) find(ctx context.Context, filter bson.M, limit int64) ([]domain.AuditEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.AuditEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureAuditIndexes creates the indexes the activity page queries by.
// Call once during startup.
func EnsureAuditIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "actorId", Value: 1}, {Key: "at", Value: -1}}},
	}
	names, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		slog.Error("failed to create audit indexes", "error", err)
		return
	}
	slog.Info("audit indexes ensured", "indexes", names)
}
