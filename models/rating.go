package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating content buckets derived from the numeric score.
const (
	RatingExcellent    = "Excellent"
	RatingGood         = "Good"
	RatingAverage      = "Average"
	RatingBelowAverage = "Below Average"
)

type Rating struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TechnicianID primitive.ObjectID `json:"technicianId,omitempty" bson:"technicianId,omitempty"`
	ServiceID    primitive.ObjectID `json:"serviceId" bson:"serviceId"`
	CustomerID   primitive.ObjectID `json:"customerId" bson:"customerId"`
	Rates        float64            `json:"rates" bson:"rates"`
	Comment      string             `json:"comment,omitempty" bson:"comment,omitempty"`
	Content      string             `json:"content" bson:"content"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BucketContent sets the content label from the numeric score.
func (r *Rating) BucketContent() {
	switch {
	case r.Rates >= 4:
		r.Content = RatingExcellent
	case r.Rates >= 3:
		r.Content = RatingGood
	case r.Rates >= 2:
		r.Content = RatingAverage
	default:
		r.Content = RatingBelowAverage
	}
}
