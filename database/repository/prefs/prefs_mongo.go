package prefsRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stillpoint/database"
	"stillpoint/models"
)

// MongoPrefsRepo implements PrefsRepository using MongoDB.
type MongoPrefsRepo struct {
	coll *mongo.Collection
}

// NewMongoPrefsRepo creates a new instance of PrefsRepository using MongoDB.
func NewMongoPrefsRepo() PrefsRepository {
	coll := database.MongoClient.Database("stillpoint").Collection("reminder_prefs")
	repo := &MongoPrefsRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPrefsRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "deviceId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert stores a device's reminder schedule.
func (r *MongoPrefsRepo) Upsert(prefs *models.ReminderPrefs) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	prefs.UpdatedAt = time.Now()
	filter := bson.M{"deviceId": prefs.DeviceID}
	update := bson.M{"$set": prefs}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert reminder prefs for %s: %w", prefs.DeviceID, err)
	}
	return nil
}

// GetByDeviceID retrieves a device's reminder schedule.
func (r *MongoPrefsRepo) GetByDeviceID(deviceID string) (*models.ReminderPrefs, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var prefs models.ReminderPrefs
	if err := r.coll.FindOne(ctx, bson.M{"deviceId": deviceID}).Decode(&prefs); err != nil {
		return nil, fmt.Errorf("failed to fetch reminder prefs for %s: %w", deviceID, err)
	}
	return &prefs, nil
}

// Disable turns a device's reminders off without losing the schedule.
func (r *MongoPrefsRepo) Disable(deviceID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"deviceId": deviceID}
	update := bson.M{"$set": bson.M{"enabled": false, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to disable reminders for %s: %w", deviceID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("reminder prefs for device %s not found", deviceID)
	}
	return nil
}
