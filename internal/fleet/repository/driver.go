package repository

import (
	"context"
	"fmt"

	fleeterrors "fleetbook/internal/fleet/errors"
	"fleetbook/pkg/config"
	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const driverCollection = "drivers"

type DriverRepository interface {
	Create(ctx context.Context, driver *model.Driver) error
	FindByID(ctx context.Context, id string) (*model.Driver, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Driver, error)
	Count(ctx context.Context) (int64, error)
	FindAvailable(ctx context.Context) ([]*model.Driver, error)
	Update(ctx context.Context, id string, update *model.DriverUpdate) (*model.Driver, error)
	UpdateStatus(ctx context.Context, id string, status config.ResourceStatus) error
	Delete(ctx context.Context, id string) error
}

type mongoDriverRepository struct {
	collection *mongo.Collection
	cfg        *config.Config
	logger     *logger.Logger
}

func NewMongoDriverRepository(client *mongo.Client, cfg *config.Config) DriverRepository {
	return &mongoDriverRepository{
		collection: client.Database(cfg.MongoDatabaseName).Collection(driverCollection),
		cfg:        cfg,
		logger:     cfg.Log,
	}
}

func (r *mongoDriverRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.cfg.MongoConnTimeout)
}

func (r *mongoDriverRepository) Create(ctx context.Context, driver *model.Driver) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if driver.ID == "" {
		driver.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, driver); err != nil {
		return fmt.Errorf("failed to insert driver: %w", err)
	}
	return nil
}

func (r *mongoDriverRepository) FindByID(ctx context.Context, id string) (*model.Driver, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, fleeterrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var driver model.Driver
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&driver)
	if err == mongo.ErrNoDocuments {
		return nil, fleeterrors.ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find driver: %w", err)
	}
	return &driver, nil
}

func (r *mongoDriverRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Driver, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeDrivers(ctx, cursor)
}

func (r *mongoDriverRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count drivers: %w", err)
	}
	return count, nil
}

// FindAvailable returns available drivers sorted by creation time, matching
// the ordering guarantee of the vehicle pool.
func (r *mongoDriverRepository) FindAvailable(ctx context.Context) ([]*model.Driver, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"status": config.Available}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list available drivers: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeDrivers(ctx, cursor)
}

func (r *mongoDriverRepository) Update(ctx context.Context, id string, update *model.DriverUpdate) (*model.Driver, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, fleeterrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := bson.M{}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Phone != "" {
		set["phone"] = update.Phone
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.Status != "" {
		set["status"] = update.Status
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var driver model.Driver
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&driver)
	if err == mongo.ErrNoDocuments {
		return nil, fleeterrors.ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}
	return &driver, nil
}

func (r *mongoDriverRepository) UpdateStatus(ctx context.Context, id string, status config.ResourceStatus) error {
	if !primitive.IsValidObjectID(id) {
		return fleeterrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update driver status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fleeterrors.ErrDriverNotFound
	}
	return nil
}

func (r *mongoDriverRepository) Delete(ctx context.Context, id string) error {
	if !primitive.IsValidObjectID(id) {
		return fleeterrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	if result.DeletedCount == 0 {
		return fleeterrors.ErrDriverNotFound
	}
	return nil
}

func decodeDrivers(ctx context.Context, cursor *mongo.Cursor) ([]*model.Driver, error) {
	drivers := make([]*model.Driver, 0)
	for cursor.Next(ctx) {
		var driver model.Driver
		if err := cursor.Decode(&driver); err != nil {
			return nil, fmt.Errorf("failed to decode driver: %w", err)
		}
		drivers = append(drivers, &driver)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return drivers, nil
}
