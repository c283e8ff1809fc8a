package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Parcel statuses accepted by create and assignment updates.
const (
	StatusPending   = "pending"
	StatusAssigned  = "assigned"
	StatusOnTheWay  = "on-the-way"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Parcel represents a delivery booking
type Parcel struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name            string             `bson:"name" json:"name" validate:"required"`
	Email           string             `bson:"email" json:"email" validate:"required,email"`
	PhoneNumber     string             `bson:"phoneNumber" json:"phoneNumber" validate:"required"`
	ParcelType      string             `bson:"parcelType" json:"parcelType" validate:"required"`
	Weight          float64            `bson:"weight" json:"weight" validate:"required,gt=0"`
	ReceiverName    string             `bson:"receiverName" json:"receiverName" validate:"required"`
	ReceiverPhone   string             `bson:"receiverPhone" json:"receiverPhone" validate:"required"`
	DeliveryAddress string             `bson:"deliveryAddress" json:"deliveryAddress" validate:"required"`
	RequestedDate   string             `bson:"requestedDate" json:"requestedDate" validate:"required"`
	ApproxDate      string             `bson:"approxDate,omitempty" json:"approxDate,omitempty"`
	Latitude        float64            `bson:"latitude" json:"latitude" validate:"gte=-90,lte=90"`
	Longitude       float64            `bson:"longitude" json:"longitude" validate:"gte=-180,lte=180"`
	Price           float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Status          string             `bson:"status" json:"status" validate:"omitempty,oneof=pending assigned on-the-way delivered cancelled"`
	DeliverymanID   string             `bson:"deliverymanId,omitempty" json:"deliverymanId,omitempty"`
	AssignedDate    string             `bson:"assignedDate,omitempty" json:"assignedDate,omitempty"`
	TrackingID      string             `bson:"trackingId,omitempty" json:"trackingId,omitempty"`
	BookingDate     time.Time          `bson:"bookingDate" json:"bookingDate"`
}

// ParcelAssignment carries the fields replaced by the assignment upsert.
// Client-supplied in full; a missing field is written as its zero value.
type ParcelAssignment struct {
	DeliveryAddress string  `bson:"deliveryAddress" json:"deliveryAddress" validate:"required"`
	ApproxDate      string  `bson:"approxDate" json:"approxDate" validate:"required"`
	Latitude        float64 `bson:"latitude" json:"latitude" validate:"gte=-90,lte=90"`
	Longitude       float64 `bson:"longitude" json:"longitude" validate:"gte=-180,lte=180"`
	ParcelType      string  `bson:"parcelType" json:"parcelType" validate:"required"`
	Weight          float64 `bson:"weight" json:"weight" validate:"required,gt=0"`
	PhoneNumber     string  `bson:"phoneNumber" json:"phoneNumber" validate:"required"`
	ReceiverPhone   string  `bson:"receiverPhone" json:"receiverPhone" validate:"required"`
	Price           float64 `bson:"price" json:"price" validate:"required,gt=0"`
	DeliverymanID   string  `bson:"deliverymanId" json:"deliverymanId" validate:"required"`
	AssignedDate    string  `bson:"assignedDate" json:"assignedDate" validate:"required"`
	Status          string  `bson:"status" json:"status" validate:"required,oneof=pending assigned on-the-way delivered cancelled"`
}
