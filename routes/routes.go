package routes

import (
	"net/http"

	"quickdel/controllers"
	"quickdel/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application. Endpoints that
// return or mutate identity-linked data sit behind the auth guard; issuing a
// session, registration, booking, and the public review reads do not.
func RegisterRoutes(
	router *mux.Router,
	auth *middleware.Auth,
	sessionController *controllers.SessionController,
	userController *controllers.UserController,
	parcelController *controllers.ParcelController,
	reviewController *controllers.ReviewController,
	paymentController *controllers.PaymentController,
) {
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("QuickDel server is running"))
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/jwt", sessionController.IssueToken).Methods("POST")
	api.HandleFunc("/logout", sessionController.Logout).Methods("POST")
	api.HandleFunc("/users", userController.CreateUser).Methods("POST")
	api.HandleFunc("/parcels", parcelController.CreateParcel).Methods("POST")
	api.HandleFunc("/reviews", reviewController.CreateReview).Methods("POST")
	api.HandleFunc("/create-payment-intent", paymentController.CreatePaymentIntent).Methods("POST")
	api.HandleFunc("/countusers", userController.CountUsers).Methods("GET")
	api.HandleFunc("/reviews", reviewController.GetReviews).Methods("GET")
	api.HandleFunc("/reviews/summary", reviewController.GetReviewSummary).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("/").Subrouter()
	protected.Use(auth.Guard)
	protected.HandleFunc("/users", userController.GetUsersByEmail).Methods("GET")
	protected.HandleFunc("/allusers", userController.GetAllUsers).Methods("GET")
	protected.HandleFunc("/parcels", parcelController.GetParcels).Methods("GET")
	protected.HandleFunc("/allparcels", parcelController.GetAllParcels).Methods("GET")
	protected.HandleFunc("/parcels/{id}", parcelController.GetParcelByID).Methods("GET")
	protected.HandleFunc("/parcels/{id}", parcelController.UpsertAssignment).Methods("PUT")
	protected.HandleFunc("/users/{id}", userController.SetTotalDeliver).Methods("PATCH")
	protected.HandleFunc("/users/{id}/image", userController.SetProfileImage).Methods("PATCH")
	protected.HandleFunc("/users/{id}/role", userController.SetRole).Methods("PATCH")
}
