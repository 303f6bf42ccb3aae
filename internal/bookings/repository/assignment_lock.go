package repository

import (
	"context"
	"fmt"
	"time"

	bookingerrors "fleetbook/internal/bookings/errors"
	"fleetbook/pkg/config"
	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const assignmentLockCollection = "assignment_locks"

// AssignmentLockID is the fixed document _id used to serialize assignment
// passes. A single ID means at most one pass runs at a time fleet-wide.
const AssignmentLockID = "fleet_assignment"

// AssignmentLockRepository guards the assignment pass with an advisory
// lock. Acquire inserts a fixed-_id document; a duplicate key error means
// another pass holds the lock. The expires_at TTL index reaps locks left
// behind by a crashed process.
type AssignmentLockRepository interface {
	Acquire(ctx context.Context, ttl time.Duration) error
	Release(ctx context.Context) error
}

type mongoAssignmentLockRepository struct {
	collection *mongo.Collection
	cfg        *config.Config
	logger     *logger.Logger
}

func NewMongoAssignmentLockRepository(client *mongo.Client, cfg *config.Config) AssignmentLockRepository {
	return &mongoAssignmentLockRepository{
		collection: client.Database(cfg.MongoDatabaseName).Collection(assignmentLockCollection),
		cfg:        cfg,
		logger:     cfg.Log,
	}
}

func (r *mongoAssignmentLockRepository) Acquire(ctx context.Context, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.MongoConnTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := model.AssignmentLock{
		ID:        AssignmentLockID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingerrors.ErrAssignmentInProgress
		}
		return fmt.Errorf("failed to acquire assignment lock: %w", err)
	}
	return nil
}

func (r *mongoAssignmentLockRepository) Release(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.MongoConnTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": AssignmentLockID}); err != nil {
		return fmt.Errorf("failed to release assignment lock: %w", err)
	}
	return nil
}
