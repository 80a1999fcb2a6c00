package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TempUser lifecycle statuses
const (
	TempStatusPending  = "Pending"
	TempStatusVerified = "Verified"
	TempStatusExpired  = "Expired"
)

// TempUser is a staged registration waiting for OTP verification. It is
// deleted when promoted into the users collection; abandoned records are
// swept by a TTL index on createdAt.
type TempUser struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName    string             `json:"firstName" bson:"firstName"`
	LastName     string             `json:"lastName" bson:"lastName"`
	Username     string             `json:"username" bson:"username"`
	Gender       string             `json:"gender" bson:"gender"`
	MobileNumber string             `json:"mobileNumber" bson:"mobileNumber"`
	Email        string             `json:"email" bson:"email"`
	Role         string             `json:"role" bson:"role"`
	Locality     string             `json:"locality,omitempty" bson:"locality,omitempty"`
	Password     string             `json:"-" bson:"password"`
	TempStatus   string             `json:"tempStatus" bson:"tempStatus"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// Promote builds the confirmed account for a staging record. The record must
// have been marked Verified first; promoting a Pending or Expired record is a
// programming error.
func (t TempUser) Promote(now time.Time) (User, error) {
	if t.TempStatus != TempStatusVerified {
		return User{}, fmt.Errorf("cannot promote staging record with status %q", t.TempStatus)
	}
	return User{
		FirstName:    t.FirstName,
		LastName:     t.LastName,
		Username:     t.Username,
		Gender:       t.Gender,
		MobileNumber: t.MobileNumber,
		Email:        t.Email,
		Password:     t.Password,
		Role:         t.Role,
		Locality:     t.Locality,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
