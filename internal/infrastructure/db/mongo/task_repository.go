package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/donelist/task-service/internal/core/domain"
)

const tasksCollection = "todos"

// TaskRepository persists tasks. Every filter that names a task id also names
// the owner, so a task is unreachable without its owner's identity.
type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Completed   bool               `bson:"completed"`
	OwnerID     primitive.ObjectID `bson:"user_id"`
}

func (d taskDoc) toDomain() *domain.Task {
	return &domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		OwnerID:     d.OwnerID.Hex(),
	}
}

func (r *TaskRepository) Insert(ctx context.Context, task *domain.Task) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ownerID, err := primitive.ObjectIDFromHex(task.OwnerID)
	if err != nil {
		return "", fmt.Errorf("insert task: owner id: %w", err)
	}

	res, err := r.coll.InsertOne(ctx, taskDoc{
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		OwnerID:     ownerID,
	})
	if err != nil {
		return "", fmt.Errorf("insert task: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert task: unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: owner id: %w", err)
	}

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": owner})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toDomain())
	}
	return tasks, nil
}

func (r *TaskRepository) FindOwned(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	var doc taskDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces the mutable fields of the task matching id+owner. The
// returned flag follows ModifiedCount: writing values identical to the stored
// document reports false even though the filter matched.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(task.ID, task.OwnerID)
	if err != nil {
		return false, domain.ErrTaskNotFound
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"title":       task.Title,
		"description": task.Description,
		"completed":   task.Completed,
	}})
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return false, domain.ErrTaskNotFound
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return res.DeletedCount == 1, nil
}

// ownedFilter builds the id+owner conjunction applied by every
// single-document operation.
func ownedFilter(id, ownerID string) (bson.M, error) {
	taskID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": taskID, "user_id": owner}, nil
}

// EnsureIndexes creates the owner index used by list queries.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
