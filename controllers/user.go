package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"quickdel/middleware"
	"quickdel/models"
	"quickdel/utils"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Every storage call is bounded so a hung database call cannot hang the
// request indefinitely.
const storageTimeout = 5 * time.Second

var (
	errInvalidPage  = errors.New("page must be a positive integer")
	errInvalidLimit = errors.New("limit must be a positive integer")
)

// UserController handles user-related requests
type UserController struct {
	Collection *mongo.Collection
	Log        *logrus.Logger
}

// NewUserController creates a new UserController
func NewUserController(client *mongo.Client, log *logrus.Logger) *UserController {
	collection := client.Database(utils.DatabaseName).Collection("users")
	return &UserController{
		Collection: collection,
		Log:        log,
	}
}

// CreateUser handles user registration
func (uc *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	err := json.NewDecoder(r.Body).Decode(&user)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if user.Role == "" {
		user.Role = "user"
	}
	if details := utils.ValidateStruct(user); details != nil {
		utils.WriteValidationError(w, details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	result, err := uc.Collection.InsertOne(ctx, user)
	if err != nil {
		uc.Log.WithError(err).Error("creating user")
		utils.WriteError(w, utils.UpstreamStatus(err), "error creating user")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, result)
}

// GetUsersByEmail retrieves users matching the email query parameter. The
// caller's session must own the requested identity.
func (uc *UserController) GetUsersByEmail(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		utils.WriteError(w, http.StatusBadRequest, "email is required")
		return
	}
	if email != claims.Email {
		utils.WriteError(w, http.StatusForbidden, "forbidden access")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	cursor, err := uc.Collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		uc.Log.WithError(err).Error("fetching users")
		utils.WriteError(w, utils.UpstreamStatus(err), "error fetching users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		uc.Log.WithError(err).Error("reading users")
		utils.WriteError(w, utils.UpstreamStatus(err), "error reading users")
		return
	}

	utils.WriteJSON(w, http.StatusOK, users)
}

// GetAllUsers retrieves a page of users filtered by role
func (uc *UserController) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	skip, limit, err := PaginationWindow(query.Get("page"), query.Get("limit"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := bson.M{}
	if role := query.Get("role"); role != "" {
		filter["role"] = role
	}

	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := uc.Collection.Find(ctx, filter, opts)
	if err != nil {
		uc.Log.WithError(err).Error("fetching users page")
		utils.WriteError(w, utils.UpstreamStatus(err), "error fetching users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		uc.Log.WithError(err).Error("reading users page")
		utils.WriteError(w, utils.UpstreamStatus(err), "error reading users")
		return
	}

	utils.WriteJSON(w, http.StatusOK, users)
}

// CountUsers returns an approximate total of the users collection. The
// estimate is advisory, display-only.
func (uc *UserController) CountUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	count, err := uc.Collection.EstimatedDocumentCount(ctx)
	if err != nil {
		uc.Log.WithError(err).Error("counting users")
		utils.WriteError(w, utils.UpstreamStatus(err), "error counting users")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// SetTotalDeliver updates a user's delivered-parcel count
func (uc *UserController) SetTotalDeliver(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var payload struct {
		TotalDeliver *int `json:"totalDeliver" validate:"required,gte=0"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if details := utils.ValidateStruct(payload); details != nil {
		utils.WriteValidationError(w, details)
		return
	}

	uc.patchUser(w, r, id, bson.M{"totalDeliver": *payload.TotalDeliver})
}

// SetProfileImage updates a user's profile image
func (uc *UserController) SetProfileImage(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var payload struct {
		Image string `json:"image" validate:"required,url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if details := utils.ValidateStruct(payload); details != nil {
		utils.WriteValidationError(w, details)
		return
	}

	uc.patchUser(w, r, id, bson.M{"image": payload.Image})
}

// SetRole assigns a user's role
func (uc *UserController) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var payload struct {
		Role string `json:"role" validate:"required,oneof=user deliveryman admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if details := utils.ValidateStruct(payload); details != nil {
		utils.WriteValidationError(w, details)
		return
	}

	uc.patchUser(w, r, id, bson.M{"role": payload.Role})
}

// patchUser applies a $set update to a single user document
func (uc *UserController) patchUser(w http.ResponseWriter, r *http.Request, id primitive.ObjectID, fields bson.M) {
	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	result, err := uc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		uc.Log.WithError(err).Error("updating user")
		utils.WriteError(w, utils.UpstreamStatus(err), "error updating user")
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// PaginationWindow converts page and limit query values into a skip/limit
// pair. Empty values default to the first page of ten; anything that is not a
// positive integer is a caller error.
func PaginationWindow(pageStr, limitStr string) (skip, limit int64, err error) {
	page := int64(1)
	limit = int64(10)

	if pageStr != "" {
		page, err = strconv.ParseInt(pageStr, 10, 64)
		if err != nil || page < 1 {
			return 0, 0, errInvalidPage
		}
	}
	if limitStr != "" {
		limit, err = strconv.ParseInt(limitStr, 10, 64)
		if err != nil || limit < 1 {
			return 0, 0, errInvalidLimit
		}
	}
	return (page - 1) * limit, limit, nil
}
