package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"package_id",
			"created_by",
			"tour_date",
			"guests",
			"booking_status",
			"payment_status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"package_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"created_by": bson.M{
				"bsonType": "string",
				"pattern":  `^[^@\s]+@[^@\s]+\.[^@\s]+$`,
			},

			"guide_email": bson.M{
				"bsonType": "string",
			},

			"tour_date": bson.M{
				"bsonType": "date",
			},

			"guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  100,
			},

			"booking_status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"in-review",
					"accepted",
					"rejected",
					"guide_assigned",
				},
			},

			"payment_status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"unpaid",
					"paid",
				},
			},

			"payment": bson.M{
				"bsonType": "object",
				"required": []string{"transaction_id", "amount"},
				"properties": bson.M{
					"transaction_id": bson.M{
						"bsonType": "string",
					},
					"method": bson.M{
						"bsonType": "string",
					},
					"amount": bson.M{
						"bsonType": []string{"double", "int", "long", "decimal"},
						"minimum":  0,
					},
					"currency": bson.M{
						"bsonType": "string",
					},
					"paid_at": bson.M{
						"bsonType": "date",
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
