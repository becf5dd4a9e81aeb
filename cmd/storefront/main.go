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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/linkon63/neocomerze/internal/account"
	"github.com/linkon63/neocomerze/internal/cache"
	"github.com/linkon63/neocomerze/internal/cart"
	"github.com/linkon63/neocomerze/internal/catalog"
	"github.com/linkon63/neocomerze/internal/checkout"
	"github.com/linkon63/neocomerze/internal/config"
	"github.com/linkon63/neocomerze/internal/events"
	h "github.com/linkon63/neocomerze/internal/http"
	"github.com/linkon63/neocomerze/internal/inventory"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Set up MongoDB connection for account documents
	mongoDB, err := account.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	inventoryClient := inventory.NewClient(cfg.InventoryAPIURL, cfg.RequestTimeout)
	catalogService := catalog.NewService(inventoryClient, cache.NewRedisCache(redisClient))

	sessions := cart.NewSessions()
	defer sessions.Close()

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Printf("Publishing order events to %v", cfg.KafkaBrokers)
	}

	accountService := account.NewService(account.NewMongoRepository(mongoDB), inventoryClient)
	checkoutService := checkout.NewService(inventoryClient, publisher)

	productHandler := h.NewProductHandler(catalogService, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(sessions, catalogService, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(sessions, checkoutService, accountService, cfg.RequestTimeout)
	accountHandler := h.NewAccountHandler(accountService, cfg.RequestTimeout)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", productHandler.List)
		r.Get("/products/{id}", productHandler.Detail)
		r.Post("/products/{id}/select", productHandler.SelectOption)
		r.Get("/categories", productHandler.Categories)
		r.Get("/campaigns", productHandler.Campaigns)
		r.Get("/general-info", productHandler.GeneralInfo)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.Clear)
		})

		r.Post("/checkout", checkoutHandler.PlaceOrder)
		r.Post("/register", accountHandler.Register)
		r.Post("/login", accountHandler.Login)
		r.Get("/profile", accountHandler.Profile)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("Storefront stopped")
}
