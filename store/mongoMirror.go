package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"civicsync/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const snapshotID = "issues"

type issueSnapshot struct {
	ID        string         `bson:"_id"`
	Issues    []models.Issue `bson:"issues"`
	UpdatedAt time.Time      `bson:"updatedAt"`
}

// MongoMirror keeps a copy of the whole issue collection in a single
// MongoDB document so a restarted process can pick up where it left off.
type MongoMirror struct {
	collection *mongo.Collection
	timeout    time.Duration
	log        *zap.SugaredLogger
}

func NewMongoMirror(collection *mongo.Collection, log *zap.SugaredLogger) *MongoMirror {
	return &MongoMirror{collection: collection, timeout: 10 * time.Second, log: log}
}

// Load returns the stored collection. found is false when nothing has been
// saved yet; a stored empty collection is found with no issues.
func (m *MongoMirror) Load(ctx context.Context) (issues []models.Issue, found bool, err error) {
	var snap issueSnapshot
	err = m.collection.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load issue snapshot: %w", err)
	}
	return snap.Issues, true, nil
}

// Save replaces the stored collection.
func (m *MongoMirror) Save(ctx context.Context, issues []models.Issue) error {
	snap := issueSnapshot{ID: snapshotID, Issues: issues, UpdatedAt: time.Now()}
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": snapshotID}, snap, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save issue snapshot: %w", err)
	}
	return nil
}

// Hook adapts Save to WithChangeHook. Failures are logged, not returned:
// the in-memory store stays authoritative.
func (m *MongoMirror) Hook() func([]models.Issue) {
	return func(issues []models.Issue) {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		if err := m.Save(ctx, issues); err != nil {
			m.log.Errorw("Failed to mirror issues", "error", err)
		}
	}
}
