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

const vehicleCollection = "vehicles"

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	FindByID(ctx context.Context, id string) (*model.Vehicle, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Vehicle, error)
	Count(ctx context.Context) (int64, error)
	FindAvailable(ctx context.Context) ([]*model.Vehicle, error)
	Update(ctx context.Context, id string, update *model.VehicleUpdate) (*model.Vehicle, error)
	UpdateStatus(ctx context.Context, id string, status config.ResourceStatus) error
	Delete(ctx context.Context, id string) error
}

type mongoVehicleRepository struct {
	collection *mongo.Collection
	cfg        *config.Config
	logger     *logger.Logger
}

func NewMongoVehicleRepository(client *mongo.Client, cfg *config.Config) VehicleRepository {
	return &mongoVehicleRepository{
		collection: client.Database(cfg.MongoDatabaseName).Collection(vehicleCollection),
		cfg:        cfg,
		logger:     cfg.Log,
	}
}

func (r *mongoVehicleRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.cfg.MongoConnTimeout)
}

func (r *mongoVehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if vehicle.ID == "" {
		vehicle.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, vehicle); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fleeterrors.ErrDuplicatePlate
		}
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}
	return nil
}

func (r *mongoVehicleRepository) FindByID(ctx context.Context, id string) (*model.Vehicle, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, fleeterrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var vehicle model.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err == mongo.ErrNoDocuments {
		return nil, fleeterrors.ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}
	return &vehicle, nil
}

func (r *mongoVehicleRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Vehicle, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeVehicles(ctx, cursor)
}

func (r *mongoVehicleRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return count, nil
}

// FindAvailable returns available vehicles sorted by creation time so the
// candidate pool keeps a stable order between assignment passes.
func (r *mongoVehicleRepository) FindAvailable(ctx context.Context) ([]*model.Vehicle, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"status": config.Available}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list available vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeVehicles(ctx, cursor)
}

func (r *mongoVehicleRepository) Update(ctx context.Context, id string, update *model.VehicleUpdate) (*model.Vehicle, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, fleeterrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := bson.M{}
	if update.Plate != "" {
		set["plate"] = update.Plate
	}
	if update.Type != "" {
		set["type"] = update.Type
	}
	if update.LoadCapacity != nil {
		set["load_capacity"] = *update.LoadCapacity
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

	var vehicle model.Vehicle
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&vehicle)
	if err == mongo.ErrNoDocuments {
		return nil, fleeterrors.ErrVehicleNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fleeterrors.ErrDuplicatePlate
		}
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return &vehicle, nil
}

func (r *mongoVehicleRepository) UpdateStatus(ctx context.Context, id string, status config.ResourceStatus) error {
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
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fleeterrors.ErrVehicleNotFound
	}
	return nil
}

func (r *mongoVehicleRepository) Delete(ctx context.Context, id string) error {
	if !primitive.IsValidObjectID(id) {
		return fleeterrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if result.DeletedCount == 0 {
		return fleeterrors.ErrVehicleNotFound
	}
	return nil
}

func decodeVehicles(ctx context.Context, cursor *mongo.Cursor) ([]*model.Vehicle, error) {
	vehicles := make([]*model.Vehicle, 0)
	for cursor.Next(ctx) {
		var vehicle model.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle: %w", err)
		}
		vehicles = append(vehicles, &vehicle)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return vehicles, nil
}
