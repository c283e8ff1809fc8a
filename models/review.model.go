package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review represents feedback left for a deliveryman. Immutable after creation.
type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DeliverymanID string             `bson:"deliverymanId" json:"deliverymanId" validate:"required"`
	ReviewerName  string             `bson:"reviewerName" json:"reviewerName" validate:"required"`
	ReviewerImage string             `bson:"reviewerImage,omitempty" json:"reviewerImage,omitempty" validate:"omitempty,url"`
	Rating        float64            `bson:"rating" json:"rating" validate:"required,gte=1,lte=5"`
	Feedback      string             `bson:"feedback" json:"feedback" validate:"required"`
	Date          time.Time          `bson:"date" json:"date"`
}

// ReviewSummary is the aggregated rating for one deliveryman.
type ReviewSummary struct {
	DeliverymanID string  `bson:"_id" json:"deliverymanId"`
	ReviewCount   int64   `bson:"reviewCount" json:"reviewCount"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
}
