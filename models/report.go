package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is a customer complaint against a technician for a given service.
type Report struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TechnicianID primitive.ObjectID `json:"technicianId" bson:"technicianId"`
	CustomerID   primitive.ObjectID `json:"customerId" bson:"customerId"`
	ServiceID    primitive.ObjectID `json:"serviceId" bson:"serviceId"`
	Complaint    string             `json:"complaint" bson:"complaint"`
	Image        string             `json:"image" bson:"image"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
