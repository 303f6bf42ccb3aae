package validators

import "go.mongodb.org/mongo-driver/bson"

var geoPointSchema = bson.M{
	"bsonType": "object",
	"required": []string{"lat", "lng"},
	"properties": bson.M{
		"lat": bson.M{
			"bsonType": "double",
			"minimum":  -90,
			"maximum":  90,
		},
		"lng": bson.M{
			"bsonType": "double",
			"minimum":  -180,
			"maximum":  180,
		},
	},
}

var stopSchema = bson.M{
	"bsonType": "object",
	"required": []string{"address", "location"},
	"properties": bson.M{
		"address": bson.M{
			"bsonType":  "string",
			"minLength": 2,
			"maxLength": 200,
		},
		"location": geoPointSchema,
	},
}

var timeWindowSchema = bson.M{
	"bsonType": "object",
	"required": []string{"start", "end"},
	"properties": bson.M{
		"start": bson.M{
			"bsonType": "date",
		},
		"end": bson.M{
			"bsonType": "date",
		},
	},
}

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"requested_by",
			"load_size",
			"pickup",
			"dropoff",
			"pickup_window",
			"dropoff_window",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"requested_by": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"contact_phone": bson.M{
				"bsonType": "string",
			},

			"load_size": bson.M{
				"bsonType": "double",
				"minimum":  0,
			},

			"pickup":  stopSchema,
			"dropoff": stopSchema,

			"pickup_window":  timeWindowSchema,
			"dropoff_window": timeWindowSchema,

			"vehicle_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"driver_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"assigned",
					"in_progress",
					"completed",
					"cancelled",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
