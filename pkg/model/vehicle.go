package model

import (
	"time"

	"fleetbook/pkg/config"
)

// VehicleType categorizes fleet assets by the load band they serve.
type VehicleType string

const (
	Van   VehicleType = "van"
	Truck VehicleType = "truck"
	Semi  VehicleType = "semi"
)

type Vehicle struct {
	ID           string                `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Plate        string                `json:"plate" bson:"plate" validate:"required,plate"`
	Type         VehicleType           `json:"type" bson:"type" validate:"required,oneof=van truck semi"`
	LoadCapacity float64               `json:"load_capacity" bson:"load_capacity" validate:"required,gt=0"`
	Location     GeoPoint              `json:"location" bson:"location"`
	Status       config.ResourceStatus `json:"status" bson:"status" validate:"required,oneof=available booked maintenance off_duty"`
	CreatedAt    time.Time             `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type VehicleUpdate struct {
	Plate        string                `json:"plate,omitempty" validate:"omitempty,plate"`
	Type         VehicleType           `json:"type,omitempty" validate:"omitempty,oneof=van truck semi"`
	LoadCapacity *float64              `json:"load_capacity,omitempty" validate:"omitempty,gt=0"`
	Location     *GeoPoint             `json:"location,omitempty"`
	Status       config.ResourceStatus `json:"status,omitempty" validate:"omitempty,oneof=available booked maintenance off_duty"`
}
