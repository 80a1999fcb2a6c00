// config/db.go
package config

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tempUserTTL = 24 * time.Hour

// ConnectDB establishes connection to MongoDB
func ConnectDB() *mongo.Client {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = os.Getenv("MONGODB_URI")
	}
	if mongoURI == "" {
		log.Fatal("MONGO_URI or MONGODB_URI environment variable is required")
	}

	// Log connection URI (without password for security)
	log.Printf("Connecting to MongoDB at: %s", maskMongoURI(mongoURI))

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("MongoDB ping error:", err)
	}

	log.Println("Connected to MongoDB")

	setupCollections(client)

	return client
}

// GetDatabase returns the application database.
func GetDatabase(client *mongo.Client) *mongo.Database {
	return client.Database(databaseName())
}

// GetCollection returns a MongoDB collection by name.
func GetCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	return client.Database(databaseName()).Collection(collectionName)
}

func databaseName() string {
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "righttouch"
	}
	return dbName
}

// setupCollections ensures the indexes the identity pipeline depends on. The
// unique indexes on users and tempusers are the real duplicate guard; the
// pre-insert existence checks in the controllers only narrow the race window.
func setupCollections(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(databaseName())

	uniqueFields := []string{"email", "mobileNumber", "username"}
	for _, collName := range []string{"users", "tempusers"} {
		coll := db.Collection(collName)
		for _, field := range uniqueFields {
			_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
				Keys:    bson.D{{Key: field, Value: 1}},
				Options: options.Index().SetUnique(true),
			})
			if err != nil {
				log.Printf("Error creating %s index on %s: %v", field, collName, err)
			}
		}
	}

	// Expired challenges are removed by the store; expiry is still checked
	// at read time since the TTL sweep is passive.
	otpColl := db.Collection("otps")
	_, err := otpColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		log.Printf("Error creating TTL index on otps: %v", err)
	}

	// Abandoned registrations age out instead of piling up.
	tempColl := db.Collection("tempusers")
	_, err = tempColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(tempUserTTL.Seconds())),
	})
	if err != nil {
		log.Printf("Error creating TTL index on tempusers: %v", err)
	}

	log.Println("Database collections and indexes setup complete")
}

// maskMongoURI masks the password in MongoDB URI for logging
func maskMongoURI(uri string) string {
	if idx := strings.Index(uri, "@"); idx > 0 {
		if colonIdx := strings.LastIndex(uri[:idx], ":"); colonIdx > 0 {
			return uri[:colonIdx+1] + "***" + uri[idx:]
		}
	}
	return uri
}
