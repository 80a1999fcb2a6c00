package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Technician tracking states, in job order.
const (
	TrackingWaiting   = "waiting"
	TrackingAccepted  = "accepted"
	TrackingComing    = "comming"
	TrackingReached   = "reached"
	TrackingWorking   = "working"
	TrackingCompleted = "completed"
)

// Technician holds the KYC profile linked to a technician-role user account.
type Technician struct {
	ID                   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID               primitive.ObjectID `json:"userId" bson:"userId"`
	PanNumber            string             `json:"panNumber" bson:"panNumber"`
	AadhaarNumber        string             `json:"aadhaarNumber" bson:"aadhaarNumber"`
	PassportNumber       string             `json:"passportNumber,omitempty" bson:"passportNumber,omitempty"`
	DrivingLicenseNumber string             `json:"drivingLicenseNumber" bson:"drivingLicenseNumber"`
	Balance              float64            `json:"balance" bson:"balance"`
	Status               string             `json:"status" bson:"status"`
	ExperienceYear       int                `json:"experienceYear" bson:"experienceYear"`
	ExperienceMonths     int                `json:"experienceMonths" bson:"experienceMonths"`
	TotalJobCompleted    int                `json:"totalJobCompleted" bson:"totalJobCompleted"`
	Tracking             string             `json:"tracking" bson:"tracking"`
	Image                string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt"`
}

type TechnicianRequest struct {
	UserID               string `json:"userId" validate:"required"`
	PanNumber            string `json:"panNumber" validate:"required"`
	AadhaarNumber        string `json:"aadhaarNumber" validate:"required"`
	PassportNumber       string `json:"passportNumber,omitempty"`
	DrivingLicenseNumber string `json:"drivingLicenseNumber" validate:"required"`
	ExperienceYear       int    `json:"experienceYear"`
	ExperienceMonths     int    `json:"experienceMonths"`
	Image                string `json:"image,omitempty"`
}
