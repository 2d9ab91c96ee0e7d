package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/srgjo27/raffle_ticket/internal/adapter/handler"
	"github.com/srgjo27/raffle_ticket/internal/adapter/messaging"
	"github.com/srgjo27/raffle_ticket/internal/adapter/notify"
	"github.com/srgjo27/raffle_ticket/internal/adapter/repository/memory"
	"github.com/srgjo27/raffle_ticket/internal/adapter/repository/postgres"
	"github.com/srgjo27/raffle_ticket/internal/core/domain"
	"github.com/srgjo27/raffle_ticket/internal/core/ports"
	"github.com/srgjo27/raffle_ticket/internal/core/services"
	"github.com/srgjo27/raffle_ticket/internal/platform/config"
	"github.com/srgjo27/raffle_ticket/internal/platform/database"
	"github.com/srgjo27/raffle_ticket/internal/platform/idgen"
)

type stores struct {
	raffles      ports.RaffleRepository
	reservations ports.ReservationRepository
	tickets      ports.TicketRepository
	seed         func(ctx context.Context, raffle *domain.Raffle) error
	close        func() error
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Println("Using in-memory store. Data is lost on restart.")
		store := memory.NewStore()
		return &stores{
			raffles:      store.Raffles(),
			reservations: store.Reservations(),
			tickets:      store.Tickets(),
			seed:         store.Raffles().Create,
			close:        func() error { return nil },
		}, nil
	}

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	raffles := postgres.NewRaffleRepository(db)
	return &stores{
		raffles:      raffles,
		reservations: postgres.NewReservationRepository(db),
		tickets:      postgres.NewTicketRepository(db),
		seed:         raffles.Create,
		close:        db.Close,
	}, nil
}

func demoRaffle() *domain.Raffle {
	return &domain.Raffle{
		ID:                uuid.NewSHA1(uuid.NameSpaceURL, []byte("raffle_ticket/demo")),
		Title:             "Demo Raffle",
		TotalTickets:      100,
		MaxTicketsPerUser: 5,
		TicketPrice:       decimal.RequireFromString("5.00"),
		HoldMinutes:       domain.DefaultHoldMinutes,
		CreatedAt:         time.Now(),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.close()

	if cfg.SeedDemoRaffle {
		raffle := demoRaffle()
		if err := st.seed(ctx, raffle); err != nil {
			log.Fatalf("Failed to seed demo raffle: %v", err)
		}
		log.Printf("Demo raffle available at /raffles/%s", raffle.ID)
	}

	log.Printf("Connecting to Redis at %s...", cfg.RedisAddr)

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	var publishers []ports.EventPublisher

	if len(cfg.KafkaBrokers) > 0 {
		events := messaging.NewEventPublisher(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
		defer events.Close()
		publishers = append(publishers, events)
		log.Printf("Publishing reservation events to Kafka topic %s", cfg.KafkaEventsTopic)
	}

	if cfg.TelegramToken != "" && cfg.TelegramAdminChatID != 0 {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramAdminChatID)
		if err != nil {
			log.Printf("Warning: Telegram notifications disabled: %v", err)
		} else {
			publishers = append(publishers, notifier)
		}
	}

	opts := []services.Option{services.WithCache(redisClient, cfg.CacheTTL)}
	if len(publishers) > 0 {
		opts = append(opts, services.WithPublisher(services.Publishers(publishers...)))
	}

	paymentIDs, err := idgen.NewPaymentIDs(cfg.PaymentNodeID)
	if err != nil {
		log.Fatalf("Failed to init payment ids: %v", err)
	}

	sweeper := services.NewExpirationSweeper(st.reservations, st.tickets, opts...)
	reservationService := services.NewReservationService(st.raffles, st.reservations, st.tickets, sweeper, opts...)
	paymentService := services.NewPaymentService(st.reservations, sweeper, paymentIDs, opts...)
	raffleService := services.NewRaffleService(st.raffles, st.tickets, sweeper, opts...)

	if cfg.SweepInterval > 0 {
		go sweeper.RunBackgroundCleanup(ctx, cfg.SweepInterval)
	}

	if len(cfg.KafkaBrokers) > 0 {
		consumer := messaging.NewPaymentConsumer(cfg.KafkaBrokers, cfg.KafkaPaymentsTopic, cfg.KafkaGroupID, paymentService)
		defer consumer.Close()
		go consumer.Start(ctx)
	}

	router := handler.NewRouter(
		handler.NewRaffleHandler(raffleService),
		handler.NewReservationHandler(reservationService, paymentService),
		[]byte(cfg.JWTSecret),
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server startup failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exiting")
}
