package main

import (
	fleethandler "fleetbook/internal/fleet/handler"
	fleetrepo "fleetbook/internal/fleet/repository"
	fleetservice "fleetbook/internal/fleet/service"
	fleetvalidator "fleetbook/internal/fleet/validator"
	"fleetbook/pkg/app"
	"fleetbook/pkg/config"
	"fleetbook/pkg/mongoclient"

	"go.mongodb.org/mongo-driver/mongo"
)

const ServiceName = "fleet"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Fleet service")

	mongoClient := mongoclient.Connect(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	defer mongoclient.Disconnect(cfg.Log, mongoClient, cfg.ShutdownTimeout)

	svc := initServices(cfg, mongoClient)

	serverApp := app.NewApplication(cfg, mongoClient,
		fleethandler.NewVehicleHandler(svc, cfg.Log),
		fleethandler.NewDriverHandler(svc, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, client *mongo.Client) fleetservice.FleetService {
	validator := fleetvalidator.NewFleetValidator(cfg.Log)
	vehicleRepo := fleetrepo.NewMongoVehicleRepository(client, cfg)
	driverRepo := fleetrepo.NewMongoDriverRepository(client, cfg)

	svc := fleetservice.NewFleetService(vehicleRepo, driverRepo, validator, cfg)

	cfg.Log.Info("Fleet service initialized", "database", cfg.MongoDatabaseName)
	return svc
}
