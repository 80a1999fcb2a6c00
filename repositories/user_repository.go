package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vignesh3161/righttouch-backend/models"
)

// UserRepository wraps lookups shared by the auth and password controllers.
type UserRepository struct {
	users     *mongo.Collection
	tempUsers *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:     db.Collection("users"),
		tempUsers: db.Collection("tempusers"),
	}
}

// FindByIdentifier resolves a user by email when the identifier looks like an
// email address, otherwise by mobile number. Returns nil when no user
// matches.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string, isEmail bool) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"mobileNumber": identifier}
	if isEmail {
		filter = bson.M{"email": identifier}
	}

	var user models.User
	err := r.users.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.FindByIdentifier(ctx, email, true)
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored password digest.
func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, digest string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"password": digest}})
	return err
}

// ExistsDuplicate reports whether any confirmed user already holds one of the
// given email, mobile number or username.
func (r *UserRepository) ExistsDuplicate(ctx context.Context, email, mobile, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"email": email},
		{"mobileNumber": mobile},
		{"username": username},
	}}
	count, err := r.users.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UsernameExists probes both the staging and confirmed collections, for the
// username generator.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := r.tempUsers.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	count, err = r.users.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
