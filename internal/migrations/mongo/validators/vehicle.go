package validators

import "go.mongodb.org/mongo-driver/bson"

var VehicleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"plate",
			"type",
			"load_capacity",
			"location",
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

			"plate": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 16,
			},

			"type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"van",
					"truck",
					"semi",
				},
			},

			"load_capacity": bson.M{
				"bsonType": "double",
				"minimum":  0,
			},

			"location": geoPointSchema,

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"available",
					"booked",
					"maintenance",
					"off_duty",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
