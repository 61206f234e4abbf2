package journalRepo

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

// MongoJournalRepo implements JournalRepository using MongoDB.
type MongoJournalRepo struct {
	coll *mongo.Collection
}

// NewMongoJournalRepo creates a new instance of JournalRepository using MongoDB.
func NewMongoJournalRepo() JournalRepository {
	coll := database.MongoClient.Database("stillpoint").Collection("journal")
	repo := &MongoJournalRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoJournalRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "deviceId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Add inserts a new journal entry.
func (r *MongoJournalRepo) Add(entry *models.JournalEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

// ListByDevice returns a device's most recent entries, newest first.
func (r *MongoJournalRepo) ListByDevice(deviceID string, limit int) ([]models.JournalEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 30
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"deviceId": deviceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries for %s: %w", deviceID, err)
	}
	defer cursor.Close(ctx)

	var entries []models.JournalEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode journal entries: %w", err)
	}
	return entries, nil
}

// CountByCategory aggregates a device's entries per category for the
// stats screen.
func (r *MongoJournalRepo) CountByCategory(deviceID string) (map[string]int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"deviceId": deviceID}}},
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate journal for %s: %w", deviceID, err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode journal aggregate: %w", err)
		}
		counts[row.ID] = row.Count
	}
	return counts, cursor.Err()
}
