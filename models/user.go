package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleOwner      = "Owner"
	RoleCustomer   = "Customer"
	RoleTechnician = "Technician"
	RoleDeveloper  = "Developer"
)

// User account statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// User is a confirmed account. Users are only ever created by promoting a
// verified TempUser; email, mobileNumber and username carry unique indexes.
type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName    string             `json:"firstName" bson:"firstName"`
	LastName     string             `json:"lastName" bson:"lastName"`
	Username     string             `json:"username" bson:"username"`
	Gender       string             `json:"gender" bson:"gender"`
	MobileNumber string             `json:"mobileNumber" bson:"mobileNumber"`
	Email        string             `json:"email" bson:"email"`
	Role         string             `json:"role" bson:"role"`
	Locality     string             `json:"locality,omitempty" bson:"locality,omitempty"`
	Password     string             `json:"password,omitempty" bson:"password"`
	Status       string             `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Response is the fixed JSON envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
}
