package model

import (
	"time"

	"fleetbook/pkg/config"
)

type Driver struct {
	ID        string                `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string                `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone     string                `json:"phone" bson:"phone" validate:"required,e164"`
	Location  GeoPoint              `json:"location" bson:"location"`
	Status    config.ResourceStatus `json:"status" bson:"status" validate:"required,oneof=available booked maintenance off_duty"`
	CreatedAt time.Time             `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type DriverUpdate struct {
	Name     string                `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone    string                `json:"phone,omitempty" validate:"omitempty,e164"`
	Location *GeoPoint             `json:"location,omitempty"`
	Status   config.ResourceStatus `json:"status,omitempty" validate:"omitempty,oneof=available booked maintenance off_duty"`
}
