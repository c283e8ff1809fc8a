// main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"quickdel/controllers"
	"quickdel/middleware"
	"quickdel/routes"
	"quickdel/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// config holds everything read from the environment, loaded once at startup
// and injected into the services that need it
type config struct {
	MongoURI       string
	JWTSecret      string
	StripeSecret   string
	PostmarkToken  string
	EmailSender    string
	Port           string
	AllowedOrigins []string
	Env            string
}

func loadConfig() config {
	cfg := config{
		MongoURI:      os.Getenv("MONGO_URI"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		StripeSecret:  os.Getenv("STRIPE_PAYMENT_SECRET"),
		PostmarkToken: os.Getenv("POSTMARK_API_TOKEN"),
		EmailSender:   os.Getenv("EMAIL_SENDER"),
		Port:          os.Getenv("PORT"),
		Env:           os.Getenv("APP_ENV"),
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = fmt.Sprintf(
			"mongodb+srv://%s:%s@cluster0.ufdhagf.mongodb.net/?retryWrites=true&w=majority",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		)
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173"
	}
	cfg.AllowedOrigins = strings.Split(origins, ",")
	return cfg
}

func newLogger(env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found. Proceeding with environment variables.")
	}
	cfg := loadConfig()
	log := newLogger(cfg.Env)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// Connect to MongoDB
	client, err := utils.ConnectDB(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("connecting to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Error("disconnecting from MongoDB")
		}
	}()
	log.Info("connected to MongoDB")

	// Initialize services and controllers
	emailService := utils.NewEmailService(cfg.PostmarkToken, cfg.EmailSender)
	auth := middleware.NewAuth([]byte(cfg.JWTSecret))
	sessionController := controllers.NewSessionController([]byte(cfg.JWTSecret), log)
	userController := controllers.NewUserController(client, log)
	parcelController := controllers.NewParcelController(client, emailService, log)
	reviewController := controllers.NewReviewController(client, log)
	paymentController := controllers.NewPaymentController(cfg.StripeSecret, log)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, auth, sessionController, userController, parcelController, reviewController, paymentController)

	// The session cookie requires credentialed CORS.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Start the server
	log.WithField("port", cfg.Port).Info("QuickDel server is running")
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler.Handler(router)); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
