package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"quickdel/models"
	"quickdel/utils"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewController handles review-related requests
type ReviewController struct {
	Collection *mongo.Collection
	Log        *logrus.Logger
}

// NewReviewController creates a new ReviewController
func NewReviewController(client *mongo.Client, log *logrus.Logger) *ReviewController {
	collection := client.Database(utils.DatabaseName).Collection("reviews")
	return &ReviewController{
		Collection: collection,
		Log:        log,
	}
}

// CreateReview stores feedback for a deliveryman. Reviews are never updated
// after creation.
func (rc *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	err := json.NewDecoder(r.Body).Decode(&review)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if details := utils.ValidateStruct(review); details != nil {
		utils.WriteValidationError(w, details)
		return
	}
	review.Date = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	result, err := rc.Collection.InsertOne(ctx, review)
	if err != nil {
		rc.Log.WithError(err).Error("creating review")
		utils.WriteError(w, utils.UpstreamStatus(err), "error creating review")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, result)
}

// GetReviews retrieves the reviews left for one deliveryman
func (rc *ReviewController) GetReviews(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if id := r.URL.Query().Get("id"); id != "" {
		filter["deliverymanId"] = id
	}

	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	cursor, err := rc.Collection.Find(ctx, filter)
	if err != nil {
		rc.Log.WithError(err).Error("fetching reviews")
		utils.WriteError(w, utils.UpstreamStatus(err), "error fetching reviews")
		return
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		rc.Log.WithError(err).Error("reading reviews")
		utils.WriteError(w, utils.UpstreamStatus(err), "error reading reviews")
		return
	}

	utils.WriteJSON(w, http.StatusOK, reviews)
}

// GetReviewSummary aggregates review count and average rating for one
// deliveryman
func (rc *ReviewController) GetReviewSummary(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "deliverymanId", Value: id}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$deliverymanId"},
			{Key: "reviewCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}

	cursor, err := rc.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		rc.Log.WithError(err).Error("aggregating reviews")
		utils.WriteError(w, utils.UpstreamStatus(err), "error aggregating reviews")
		return
	}
	defer cursor.Close(ctx)

	summaries := []models.ReviewSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		rc.Log.WithError(err).Error("reading review summary")
		utils.WriteError(w, utils.UpstreamStatus(err), "error reading review summary")
		return
	}

	// A deliveryman with no reviews gets an explicit zero summary.
	if len(summaries) == 0 {
		utils.WriteJSON(w, http.StatusOK, models.ReviewSummary{DeliverymanID: id})
		return
	}
	utils.WriteJSON(w, http.StatusOK, summaries[0])
}
