package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditAction names a form submission forwarded to the remote API.
type AuditAction string

const (
	ActionCreateUser     AuditAction = "user.create"
	ActionCreateWorkout  AuditAction = "workout.create"
	ActionAppendExercise AuditAction = "exercise.append"
)

// AuditOutcome records how the remote API answered.
type AuditOutcome string

const (
	AuditSucceeded AuditOutcome = "succeeded"
	AuditRejected  AuditOutcome = "rejected" // remote answered with a non-success status
	AuditFailed    AuditOutcome = "failed"   // transport error, no status
)

// AuditEntry is one submission in the activity log.
type AuditEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorID    int                `bson:"actorId" json:"actorId"`
	ActorRole  Role               `bson:"actorRole" json:"actorRole"`
	Action     AuditAction        `bson:"action" json:"action"`
	Target     string             `bson:"target" json:"target"` // e.g. email of the new user, program name
	StatusCode int                `bson:"statusCode,omitempty" json:"statusCode,omitempty"`
	Outcome    AuditOutcome       `bson:"outcome" json:"outcome"`
	RequestID  string             `bson:"requestId,omitempty" json:"requestId,omitempty"`
	At         time.Time          `bson:"at" json:"at"`
}
