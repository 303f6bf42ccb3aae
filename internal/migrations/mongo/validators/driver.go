package validators

import "go.mongodb.org/mongo-driver/bson"

var DriverValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"phone",
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

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"phone": bson.M{
				"bsonType": "string",
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
