package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses shared by service and product bookings.
const (
	BookingActive    = "active"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// ServiceBooking ties a customer, a technician and a service together with a
// plain status field. Assignment and dispatch are handled elsewhere.
type ServiceBooking struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TechnicianID primitive.ObjectID `json:"technicianId" bson:"technicianId"`
	UserID       primitive.ObjectID `json:"userId" bson:"userId"`
	ServiceID    primitive.ObjectID `json:"serviceId" bson:"serviceId"`
	Status       string             `json:"status" bson:"status"`
	Amount       float64            `json:"amount" bson:"amount"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

type ProductBooking struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Status    string             `json:"status" bson:"status"`
	Amount    float64            `json:"amount" bson:"amount"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type ServiceBookingRequest struct {
	TechnicianID string  `json:"technicianId" validate:"required"`
	UserID       string  `json:"userId" validate:"required"`
	ServiceID    string  `json:"serviceId" validate:"required"`
	Amount       float64 `json:"amount"`
}

type ProductBookingRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	UserID    string  `json:"userId" validate:"required"`
	Amount    float64 `json:"amount"`
}
