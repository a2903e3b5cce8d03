package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/donelist/task-service/internal/core/domain"
)

const activityCollection = "task_activity"

// ActivityRepository persists the task audit trail.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type activityDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TaskID    primitive.ObjectID `bson:"task_id"`
	OwnerID   primitive.ObjectID `bson:"user_id"`
	Action    string             `bson:"action"`
	Timestamp time.Time          `bson:"timestamp"`
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.TaskActivity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	taskID, err := primitive.ObjectIDFromHex(entry.TaskID)
	if err != nil {
		return fmt.Errorf("insert activity: task id: %w", err)
	}
	ownerID, err := primitive.ObjectIDFromHex(entry.OwnerID)
	if err != nil {
		return fmt.Errorf("insert activity: owner id: %w", err)
	}

	_, err = r.coll.InsertOne(ctx, activityDoc{
		TaskID:    taskID,
		OwnerID:   ownerID,
		Action:    string(entry.Action),
		Timestamp: entry.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByTask(ctx context.Context, taskID, ownerID string) ([]*domain.TaskActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	task, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	cursor, err := r.coll.Find(ctx,
		bson.M{"task_id": task, "user_id": owner},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []activityDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	entries := make([]*domain.TaskActivity, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, &domain.TaskActivity{
			TaskID:    d.TaskID.Hex(),
			OwnerID:   d.OwnerID.Hex(),
			Action:    domain.ActivityAction(d.Action),
			Timestamp: d.Timestamp,
		})
	}
	return entries, nil
}

// EnsureIndexes creates the compound index backing owner-scoped activity
// reads.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "task_id", Value: 1},
			{Key: "user_id", Value: 1},
			{Key: "timestamp", Value: 1},
		},
	})
	return err
}
