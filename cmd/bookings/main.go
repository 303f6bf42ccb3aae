package main

import (
	"fleetbook/internal/bookings/events"
	bookinghandler "fleetbook/internal/bookings/handler"
	bookingrepo "fleetbook/internal/bookings/repository"
	bookingservice "fleetbook/internal/bookings/service"
	bookingvalidator "fleetbook/internal/bookings/validator"
	fleetrepo "fleetbook/internal/fleet/repository"
	"fleetbook/pkg/app"
	"fleetbook/pkg/config"
	"fleetbook/pkg/mongoclient"

	"go.mongodb.org/mongo-driver/mongo"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Bookings service")

	mongoClient := mongoclient.Connect(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	defer mongoclient.Disconnect(cfg.Log, mongoClient, cfg.ShutdownTimeout)

	publisher := initPublisher(cfg)
	bookingService := initServices(cfg, mongoClient, publisher)

	serverApp := app.NewApplication(cfg, mongoClient,
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return events.NewNopPublisher()
	}

	publisher, err := events.NewKafkaPublisher(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}
	cfg.Log.Info("Booking events enabled", "topic", cfg.BookingEventsTopic)
	return publisher
}

func initServices(cfg *config.Config, client *mongo.Client, publisher events.Publisher) bookingservice.BookingService {
	validator := bookingvalidator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingrepo.NewMongoBookingRepository(client, cfg)
	lockRepo := bookingrepo.NewMongoAssignmentLockRepository(client, cfg)
	vehicleRepo := fleetrepo.NewMongoVehicleRepository(client, cfg)
	driverRepo := fleetrepo.NewMongoDriverRepository(client, cfg)

	svc := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		vehicleRepo,
		driverRepo,
		validator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return svc
}
