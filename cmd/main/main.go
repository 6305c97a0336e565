package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tovarka-main/internal/app"
	"tovarka-main/internal/category"
	elasticService "tovarka-main/internal/elastic_search"
	"tovarka-main/internal/etl"
	handlersCategory "tovarka-main/internal/handlers/category"
	handlersProduct "tovarka-main/internal/handlers/product"
	handlersRating "tovarka-main/internal/handlers/rating"
	handlersCart "tovarka-main/internal/handlers/shopping_cart"
	handlersUser "tovarka-main/internal/handlers/user"
	"tovarka-main/internal/kafka"
	"tovarka-main/internal/middleware"
	"tovarka-main/internal/product"
	"tovarka-main/internal/rating"
	"tovarka-main/internal/session"
	"tovarka-main/internal/shopping_cart"
	"tovarka-main/internal/user"

	_ "github.com/lib/pq"
)

const (
	cfgPath   = "config/config.yaml"
	RedisAddr = "redis:6379"
)

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// парсим конфиг
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init db
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s "+"password=%s dbname=%s sslmode=disable",
		c.CfgDB.Host, c.CfgDB.Port, c.CfgDB.Login, c.CfgDB.Password, c.CfgDB.Database,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatalf("error to database start: %v", err)
	}

	db.SetMaxOpenConns(c.MaxOpenConns)
	if err := db.Ping(); err != nil {
		logger.Infof("Failed to get response to ping: %v", err)
	}

	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     RedisAddr,
		Password: "",
		DB:       0, // стандартная БД
	})

	// init elasticsearch
	esClient, err := elasticsearch.NewDefaultClient()
	if err != nil {
		logger.Fatalf("error to elasticsearch client init: %v", err)
	}

	esService := elasticService.NewService(esClient, logger, c.CfgES.Index)
	if err := esService.EnsureIndex(context.Background()); err != nil {
		logger.Warnf("failed to ensure elasticsearch index: %v", err)
	}

	// init kafka producer
	eventProducer := kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
	defer func() {
		if err := eventProducer.Close(); err != nil {
			logger.Warnf("error to close kafka producer: %v", err)
		}
	}()

	// init ETL pipeline: postgres -> elasticsearch
	extractor := etl.NewPostgresExtractor(db, logger)
	transformer := etl.NewTransformer(logger)
	loader := etl.NewElasticLoader(esService, logger, db)
	pipeline := etl.NewPipeline(extractor, transformer, loader, logger, c.ETLTimeout)
	go pipeline.Run(context.Background())

	// init repository
	userRepository := user.NewUserDBRepository(db, logger)
	sessionRepository := session.NewSessionRepository(redisClient, logger, c.Secret, c.SessionDuration)
	productRepository := product.NewProductDBRepository(db, logger)
	ratingRepository := rating.NewRatingDBRepository(db, logger)
	categoryRepository := category.NewCategoryDBRepository(db, logger)
	cartRepository := shopping_cart.NewShoppingCartRepository(db, logger)

	// init router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// init handlers
	userHandlers := handlersUser.NewUserHandler(logger, userRepository, sessionRepository)
	productHandlers := handlersProduct.NewProductHandler(logger, productRepository, esService, eventProducer)
	ratingHandlers := handlersRating.NewRatingHandler(logger, ratingRepository, eventProducer)
	categoryHandlers := handlersCategory.NewCategoryHandler(logger, categoryRepository)
	cartHandlers := handlersCart.NewShoppingCartHandler(logger, cartRepository, productRepository, userRepository, eventProducer)

	// Ручки требующие авторизации
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.Auth(sessionRepository, logger))

	authRouter.HandleFunc("/user/{id}", userHandlers.ChangeProfile).Methods("PUT")

	authRouter.HandleFunc("/product", productHandlers.Create).Methods("POST")

	authRouter.HandleFunc("/rating", ratingHandlers.Create).Methods("POST")
	authRouter.HandleFunc("/ratings", ratingHandlers.GetAll).Methods("GET")
	authRouter.HandleFunc("/rating/{id}", ratingHandlers.Update).Methods("PUT")
	authRouter.HandleFunc("/rating/{id}", ratingHandlers.Delete).Methods("DELETE")

	authRouter.HandleFunc("/category", categoryHandlers.Create).Methods("POST")
	authRouter.HandleFunc("/category/{id}", categoryHandlers.Update).Methods("PUT")
	authRouter.HandleFunc("/category/{id}", categoryHandlers.Delete).Methods("DELETE")

	authRouter.HandleFunc("/cart/{userID}", cartHandlers.GetCart).Methods("GET")
	authRouter.HandleFunc("/cart/{userID}/item/{productID}", cartHandlers.AddToShoppingCart).Methods("POST")
	authRouter.HandleFunc("/cart/{userID}/item/{productID}", cartHandlers.DeleteFromShoppingCart).Methods("DELETE")
	authRouter.HandleFunc("/cart/{userID}/purchase", cartHandlers.PurchaseFromCart).Methods("POST")

	// Ручки НЕ требующие авторизации
	noAuthRouter := r.PathPrefix("/api").Subrouter()

	noAuthRouter.HandleFunc("/user/{id}", userHandlers.Info).Methods("GET")
	noAuthRouter.HandleFunc("/user/register", userHandlers.Register).Methods("POST")
	noAuthRouter.HandleFunc("/user/login", userHandlers.Login).Methods("POST")

	noAuthRouter.HandleFunc("/product/{id}", productHandlers.GetByID).Methods("GET")
	noAuthRouter.HandleFunc("/products/top/{limit}", productHandlers.GetTopN).Methods("GET")
	noAuthRouter.HandleFunc("/products/search", productHandlers.SearchProducts).Methods("GET")

	noAuthRouter.HandleFunc("/categories", categoryHandlers.GetAll).Methods("GET")
	noAuthRouter.HandleFunc("/category/{id}", categoryHandlers.GetByID).Methods("GET")

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		panic("can't start server: " + err.Error())
	}
}
