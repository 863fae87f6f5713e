package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "exploreBD"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	DefaultAuthTokenLeeway = 30 * time.Second

	DefaultPaymentGatewayURL     = "http://localhost:9400"
	DefaultPaymentGatewayTimeout = 10 * time.Second
	DefaultPaymentCurrency       = "BDT"

	DefaultKafkaBrokers      = "localhost:9092"
	DefaultKafkaBookingTopic = "booking-events"
	DefaultKafkaEnabled      = false

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 50

	RandomPackageSample = 3
	RandomGuideSample   = 6
	RandomStorySample   = 4
)
