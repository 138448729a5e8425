package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoDocumentID = "state"

// MongoStore persists the snapshot as one document in a collection,
// replaced wholesale on every mutation. It is still a whole-document
// store, not a per-aggregate schema.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection

	mu      sync.RWMutex
	current *Snapshot
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type mongoDocument struct {
	ID       string   `bson:"_id"`
	Snapshot Snapshot `bson:"snapshot"`
}

func NewMongoStore(ctx context.Context, config *MongoConfig) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &MongoStore{
		client:     client,
		collection: client.Database(config.Database).Collection(config.Collection),
	}

	var doc mongoDocument
	err = s.collection.FindOne(ctx, bson.M{"_id": mongoDocumentID}).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		s.current = Seed()
		if err := s.write(ctx, s.current); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load snapshot from mongodb: %w", err)
	default:
		snap := doc.Snapshot
		s.current = &snap
	}

	return s, nil
}

func (s *MongoStore) View(ctx context.Context, fn func(*Snapshot) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.current)
}

func (s *MongoStore) Update(ctx context.Context, fn func(*Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := clone(s.current)
	if err != nil {
		return err
	}

	if err := fn(next); err != nil {
		return err
	}

	if err := s.write(ctx, next); err != nil {
		return err
	}

	s.current = next
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) write(ctx context.Context, snap *Snapshot) error {
	doc := mongoDocument{ID: mongoDocumentID, Snapshot: *snap}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": mongoDocumentID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write snapshot to mongodb: %w", err)
	}
	return nil
}
