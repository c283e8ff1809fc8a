package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"quickdel/middleware"
	"quickdel/models"
	"quickdel/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ParcelController handles parcel-related requests
type ParcelController struct {
	Collection   *mongo.Collection
	EmailService *utils.EmailService
	Log          *logrus.Logger
}

// NewParcelController creates a new ParcelController
func NewParcelController(client *mongo.Client, emailService *utils.EmailService, log *logrus.Logger) *ParcelController {
	collection := client.Database(utils.DatabaseName).Collection("parcels")
	return &ParcelController{
		Collection:   collection,
		EmailService: emailService,
		Log:          log,
	}
}

// CreateParcel stores a new parcel booking. Every booking gets a tracking id
// and a booking timestamp; the sender is notified by email when mail is
// configured.
func (pc *ParcelController) CreateParcel(w http.ResponseWriter, r *http.Request) {
	var parcel models.Parcel
	err := json.NewDecoder(r.Body).Decode(&parcel)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if parcel.Status == "" {
		parcel.Status = models.StatusPending
	}
	if details := utils.ValidateStruct(parcel); details != nil {
		utils.WriteValidationError(w, details)
		return
	}

	parcel.TrackingID = uuid.NewString()
	parcel.BookingDate = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	result, err := pc.Collection.InsertOne(ctx, parcel)
	if err != nil {
		pc.Log.WithError(err).Error("creating parcel")
		utils.WriteError(w, utils.UpstreamStatus(err), "error creating parcel")
		return
	}

	// Best effort; a failed confirmation email must not fail the booking.
	go func(email, name, trackingID string) {
		if err := pc.EmailService.SendBookingConfirmation(email, name, trackingID); err != nil {
			pc.Log.WithError(err).Warn("sending booking confirmation")
		}
	}(parcel.Email, parcel.Name, parcel.TrackingID)

	utils.WriteJSON(w, http.StatusCreated, result)
}

// GetParcels retrieves parcels. With an email query parameter the session
// must own that identity and only that sender's parcels are returned;
// without one, all parcels are returned.
func (pc *ParcelController) GetParcels(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	filter := bson.M{}
	if email := r.URL.Query().Get("email"); email != "" {
		if email != claims.Email {
			utils.WriteError(w, http.StatusForbidden, "forbidden access")
			return
		}
		filter["email"] = email
	}

	pc.findParcels(w, r, filter)
}

// GetAllParcels retrieves parcels matching the optional email, parcelStatus,
// and role query parameters
func (pc *ParcelController) GetAllParcels(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := ParcelListFilter(query.Get("email"), query.Get("parcelStatus"), query.Get("role"))
	pc.findParcels(w, r, filter)
}

// GetParcelByID retrieves a single parcel by id
func (pc *ParcelController) GetParcelByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid parcel id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	var parcel models.Parcel
	err = pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&parcel)
	if err == mongo.ErrNoDocuments {
		utils.WriteError(w, http.StatusNotFound, "parcel not found")
		return
	}
	if err != nil {
		pc.Log.WithError(err).Error("fetching parcel")
		utils.WriteError(w, utils.UpstreamStatus(err), "error fetching parcel")
		return
	}

	utils.WriteJSON(w, http.StatusOK, parcel)
}

// UpsertAssignment replaces the delivery-assignment field set of a parcel,
// creating the document when the id has no match. Update and first
// assignment are handled uniformly.
func (pc *ParcelController) UpsertAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid parcel id")
		return
	}

	var assignment models.ParcelAssignment
	if err := json.NewDecoder(r.Body).Decode(&assignment); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if details := utils.ValidateStruct(assignment); details != nil {
		utils.WriteValidationError(w, details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	update := bson.M{"$set": assignment}
	opts := options.Update().SetUpsert(true)
	result, err := pc.Collection.UpdateOne(ctx, bson.M{"_id": id}, update, opts)
	if err != nil {
		pc.Log.WithError(err).Error("updating parcel assignment")
		utils.WriteError(w, utils.UpstreamStatus(err), "error updating parcel")
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// findParcels runs a filter against the parcels collection and writes the
// matching documents
func (pc *ParcelController) findParcels(w http.ResponseWriter, r *http.Request, filter bson.M) {
	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	cursor, err := pc.Collection.Find(ctx, filter)
	if err != nil {
		pc.Log.WithError(err).Error("fetching parcels")
		utils.WriteError(w, utils.UpstreamStatus(err), "error fetching parcels")
		return
	}
	defer cursor.Close(ctx)

	parcels := []models.Parcel{}
	if err := cursor.All(ctx, &parcels); err != nil {
		pc.Log.WithError(err).Error("reading parcels")
		utils.WriteError(w, utils.UpstreamStatus(err), "error reading parcels")
		return
	}

	utils.WriteJSON(w, http.StatusOK, parcels)
}

// ParcelListFilter builds the AND-combined filter for parcel listings. An
// absent value adds no constraint. Parcel references are identity values, so
// a deliveryman's email matches the deliverymanId field and any other role
// matches the sender email.
func ParcelListFilter(email, status, role string) bson.M {
	filter := bson.M{}
	if email != "" {
		if role == "deliveryman" {
			filter["deliverymanId"] = email
		} else {
			filter["email"] = email
		}
	}
	if status != "" {
		filter["status"] = status
	}
	return filter
}
