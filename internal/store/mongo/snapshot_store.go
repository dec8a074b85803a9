package mongo

import (
	"context"
	"errors"
	"fmt"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	snapshotCollectionName = "snapshots"
	// The dataset lives in a single document so that every save replaces the
	// whole state in one write, matching the last-write-wins contract.
	snapshotKey = "attendease_v3_db"
)

// snapshotDocument wraps the aggregate under a fixed _id.
type snapshotDocument struct {
	Key  string         `bson:"_id"`
	Data domain.AppData `bson:"data"`
}

// mongoSnapshotStore implements store.SnapshotStore on a single MongoDB
// document.
type mongoSnapshotStore struct {
	collection *mongo.Collection
	seed       func() *domain.AppData
}

// NewMongoSnapshotStore creates a snapshot store backed by the given database.
// When no snapshot document exists yet, Load installs and returns the seed.
func NewMongoSnapshotStore(db *mongo.Database, seed func() *domain.AppData) store.SnapshotStore {
	if seed == nil {
		seed = store.SeedData
	}
	return &mongoSnapshotStore{
		collection: db.Collection(snapshotCollectionName),
		seed:       seed,
	}
}

func (s *mongoSnapshotStore) Load(ctx context.Context) (*domain.AppData, error) {
	var doc snapshotDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": snapshotKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return s.Save(ctx, s.seed())
		}
		return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
	}
	return &doc.Data, nil
}

func (s *mongoSnapshotStore) Save(ctx context.Context, data *domain.AppData) (*domain.AppData, error) {
	doc := snapshotDocument{Key: snapshotKey, Data: *data}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": snapshotKey}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrSaveFailed, err)
	}
	return data, nil
}
