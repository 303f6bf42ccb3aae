package repository

import (
	"context"
	"fmt"
	"time"

	bookingerrors "fleetbook/internal/bookings/errors"
	"fleetbook/pkg/config"
	mongodb "fleetbook/pkg/db/mongo"
	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bookingCollection = "bookings"

// occupyingStatuses are the statuses under which a booking holds its
// vehicle and driver. Pending bookings hold nothing.
var occupyingStatuses = []config.BookingStatus{config.Assigned, config.InProgress}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context) (int64, error)
	FindActive(ctx context.Context, limit int) ([]*model.Booking, error)
	FindByResource(ctx context.Context, vehicleID, driverID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, error)
	CountByResource(ctx context.Context, vehicleID, driverID string, from, to *time.Time) (int64, error)
	UpdateStatus(ctx context.Context, id string, status config.BookingStatus) error
	UpdateAssignment(ctx context.Context, id, vehicleID, driverID string, status config.BookingStatus) error
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongodb.TransactionFunc) error
}

type mongoBookingRepository struct {
	collection *mongo.Collection
	txManager  mongodb.TransactionManager
	cfg        *config.Config
	logger     *logger.Logger
}

func NewMongoBookingRepository(client *mongo.Client, cfg *config.Config) BookingRepository {
	return &mongoBookingRepository{
		collection: client.Database(cfg.MongoDatabaseName).Collection(bookingCollection),
		txManager:  mongodb.NewTransactionManager(client),
		cfg:        cfg,
		logger:     cfg.Log,
	}
}

func (r *mongoBookingRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.cfg.MongoConnTimeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if booking.ID == "" {
		booking.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, bookingerrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var booking model.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, bookingerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// FindActive returns bookings that currently occupy a vehicle and driver,
// oldest first so the conflict scan is stable across passes. The caller
// caps the scan via limit.
func (r *mongoBookingRepository) FindActive(ctx context.Context, limit int) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"status": bson.M{"$in": occupyingStatuses}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active bookings: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

func (r *mongoBookingRepository) FindByResource(ctx context.Context, vehicleID, driverID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, error) {
	filter, err := resourceFilter(vehicleID, driverID, from, to)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search bookings by resource: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

func (r *mongoBookingRepository) CountByResource(ctx context.Context, vehicleID, driverID string, from, to *time.Time) (int64, error) {
	filter, err := resourceFilter(vehicleID, driverID, from, to)
	if err != nil {
		return 0, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings by resource: %w", err)
	}
	return count, nil
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, status config.BookingStatus) error {
	if !primitive.IsValidObjectID(id) {
		return bookingerrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingerrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) UpdateAssignment(ctx context.Context, id, vehicleID, driverID string, status config.BookingStatus) error {
	if !primitive.IsValidObjectID(id) {
		return bookingerrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"vehicle_id": vehicleID,
			"driver_id":  driverID,
			"status":     status,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking assignment: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingerrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) error {
	if !primitive.IsValidObjectID(id) {
		return bookingerrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return bookingerrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongodb.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

// resourceFilter builds the query for bookings occupying a vehicle and/or
// driver. The optional [from, to) range matches bookings whose trip span
// (pickup start through dropoff end) intersects it.
func resourceFilter(vehicleID, driverID string, from, to *time.Time) (bson.M, error) {
	filter := bson.M{}
	if vehicleID != "" {
		if !primitive.IsValidObjectID(vehicleID) {
			return nil, bookingerrors.ErrInvalidID
		}
		filter["vehicle_id"] = vehicleID
	}
	if driverID != "" {
		if !primitive.IsValidObjectID(driverID) {
			return nil, bookingerrors.ErrInvalidID
		}
		filter["driver_id"] = driverID
	}
	if len(filter) == 0 {
		return nil, bookingerrors.ErrInvalidID
	}
	if to != nil {
		filter["pickup_window.start"] = bson.M{"$lt": *to}
	}
	if from != nil {
		filter["dropoff_window.end"] = bson.M{"$gt": *from}
	}
	return filter, nil
}

func decodeBookings(ctx context.Context, cursor *mongo.Cursor) ([]*model.Booking, error) {
	bookings := make([]*model.Booking, 0)
	for cursor.Next(ctx) {
		var booking model.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}
