package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Vignesh3161/righttouch-backend/models"
)

const queryTimeout = 10 * time.Second

// OTPRepository persists OTP challenges in the otps collection.
type OTPRepository struct {
	collection *mongo.Collection
}

func NewOTPRepository(db *mongo.Database) *OTPRepository {
	return &OTPRepository{collection: db.Collection("otps")}
}

func (r *OTPRepository) Insert(ctx context.Context, otp models.OTP) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, otp)
	return err
}

// LatestByOwner returns the most recently created challenge for the owner, or
// nil when none exists.
func (r *OTPRepository) LatestByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.OTP, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var otp models.OTP
	err := r.collection.FindOne(ctx, bson.M{"userId": ownerID}, opts).Decode(&otp)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepository) Update(ctx context.Context, otp *models.OTP) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"attempts":   otp.Attempts,
		"isVerified": otp.IsVerified,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": otp.ID}, update)
	return err
}

func (r *OTPRepository) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": ownerID})
	return err
}
