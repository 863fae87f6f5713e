package validators

import "go.mongodb.org/mongo-driver/bson"

var GuideValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
			"name",
			"status",
			"applied_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  `^[^@\s]+@[^@\s]+\.[^@\s]+$`,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"experience": bson.M{
				"bsonType":  "string",
				"maxLength": 5000,
			},

			"languages": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"active",
					"rejected",
				},
			},

			"applied_at": bson.M{
				"bsonType": "date",
			},

			"decided_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
