package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service approval statuses
const (
	ServiceStatusWaiting  = "waiting"
	ServiceStatusAccepted = "accepted"
	ServiceStatusDecline  = "decline"
)

// Service is a bookable offering under a category. The commission split is
// derived from the cost and kept on the document so listings don't recompute
// it per read.
type Service struct {
	ID                        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CategoryID                primitive.ObjectID `json:"categoryId" bson:"categoryId"`
	ServiceName               string             `json:"serviceName" bson:"serviceName"`
	Description               string             `json:"description" bson:"description"`
	ServiceCost               float64            `json:"serviceCost" bson:"serviceCost"`
	CommissionPercentage      float64            `json:"commissionPercentage" bson:"commissionPercentage"`
	CommissionAmount          float64            `json:"commissionAmount" bson:"commissionAmount"`
	TechnicianAmount          float64            `json:"technicianAmount" bson:"technicianAmount"`
	ServiceDiscountPercentage float64            `json:"serviceDiscountPercentage" bson:"serviceDiscountPercentage"`
	Quantity                  int                `json:"quantity" bson:"quantity"`
	Active                    string             `json:"active" bson:"active"`
	Status                    string             `json:"status" bson:"status"`
	Duration                  string             `json:"duration,omitempty" bson:"duration,omitempty"`
	CreatedAt                 time.Time          `json:"createdAt" bson:"createdAt"`
}

// ComputeCommission fills the derived commission split from the cost and
// commission percentage.
func (s *Service) ComputeCommission() {
	s.CommissionAmount = s.ServiceCost * s.CommissionPercentage / 100
	s.TechnicianAmount = s.ServiceCost - s.CommissionAmount
}
