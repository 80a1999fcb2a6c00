package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP is a single issued challenge. The code itself is stored bcrypt-hashed,
// never in plaintext. A TTL index on expiresAt removes stale documents; the
// expiry is still checked at read time since the TTL sweep is passive.
type OTP struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"userId"`
	OTP        string             `bson:"otp"`
	ExpiresAt  time.Time          `bson:"expiresAt"`
	Attempts   int                `bson:"attempts"`
	IsVerified bool               `bson:"isVerified"`
	CreatedAt  time.Time          `bson:"createdAt"`
}
