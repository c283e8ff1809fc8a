package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the system
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name" validate:"required"`
	Email        string             `bson:"email" json:"email" validate:"required,email"`
	Role         string             `bson:"role" json:"role" validate:"required,oneof=user deliveryman admin"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty" validate:"omitempty,url"`
	TotalDeliver int                `bson:"totalDeliver" json:"totalDeliver" validate:"gte=0"`
}
