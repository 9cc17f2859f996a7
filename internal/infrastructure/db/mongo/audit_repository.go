package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/housewarrior/housewarrior/internal/core/domain"
)

const authEventsCollection = "auth_events"

// AuditRepository persists auth audit events.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(authEventsCollection)}
}

type authEventDoc struct {
	Email     string `bson:"email"`
	Kind      string `bson:"kind"`
	RequestID string `bson:"request_id,omitempty"`
	At        int64  `bson:"at"`
}

func (r *AuditRepository) Record(ctx context.Context, event domain.AuthEvent) error {
	_, err := r.coll.InsertOne(ctx, authEventDoc{
		Email:     event.Email,
		Kind:      string(event.Kind),
		RequestID: event.RequestID,
		At:        event.At.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
