package main

import (
	"explorebd/internal/auth"
	"explorebd/internal/bookings/events"
	bookingshandler "explorebd/internal/bookings/handler"
	bookingsrepository "explorebd/internal/bookings/repository"
	bookingsservice "explorebd/internal/bookings/service"
	bookingsvalidator "explorebd/internal/bookings/validator"
	guideshandler "explorebd/internal/guides/handler"
	guidesrepository "explorebd/internal/guides/repository"
	guidesservice "explorebd/internal/guides/service"
	packageshandler "explorebd/internal/packages/handler"
	packagesrepository "explorebd/internal/packages/repository"
	packagesservice "explorebd/internal/packages/service"
	paymentshandler "explorebd/internal/payments/handler"
	paymentsservice "explorebd/internal/payments/service"
	storieshandler "explorebd/internal/stories/handler"
	storiesrepository "explorebd/internal/stories/repository"
	storiesservice "explorebd/internal/stories/service"
	usershandler "explorebd/internal/users/handler"
	usersrepository "explorebd/internal/users/repository"
	usersservice "explorebd/internal/users/service"
	"explorebd/pkg/app"
	"explorebd/pkg/client"
	"explorebd/pkg/config"
	"explorebd/pkg/contracts"
	"explorebd/pkg/kafka"
)

const ServiceName = "explorebd"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting ExploreBD API")

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initHandlers(cfg)...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config) []contracts.Handler {
	userRepo := usersrepository.NewMongoUserRepository(cfg)
	userService := usersservice.NewUserService(userRepo, cfg)

	verifier := auth.NewJWTVerifier(cfg.AuthTokenSecret, cfg.AuthTokenLeeway)
	gate := auth.NewGate(verifier, userService, cfg.Log)

	guideRepo := guidesrepository.NewMongoGuideRepository(cfg)
	guideService := guidesservice.NewGuideService(guideRepo, userService, cfg)

	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)
	bookingValidator := bookingsvalidator.NewBookingValidator(cfg.Log)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		userService,
		initEventPublisher(cfg),
		bookingValidator,
		cfg,
	)

	packageRepo := packagesrepository.NewMongoPackageRepository(cfg)
	packageService := packagesservice.NewPackageService(packageRepo, cfg)

	storyRepo := storiesrepository.NewMongoStoryRepository(cfg)
	storyService := storiesservice.NewStoryService(storyRepo, cfg)

	gateway := client.NewPaymentGateway(cfg.PaymentGatewayURL, cfg.PaymentGatewayTimeout)
	paymentService := paymentsservice.NewPaymentService(gateway, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		usershandler.NewUserHandler(userService, gate, cfg.Log),
		guideshandler.NewGuideHandler(guideService, gate, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, gate, cfg.Log),
		packageshandler.NewPackageHandler(packageService, gate, cfg.Log),
		storieshandler.NewStoryHandler(storyService, gate, cfg.Log),
		paymentshandler.NewPaymentHandler(paymentService, gate, cfg.Log),
	}
}

func initEventPublisher(cfg *config.Config) bookingsservice.EventPublisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.NopPublisher{}
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaBookingTopic,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaBookingTopic)
	return events.NewKafkaPublisher(producer)
}
