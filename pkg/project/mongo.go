package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a MongoDB-backed project store for hosted deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // connection string, e.g. mongodb://localhost:27017
	Database   string // defaults to "penstock"
	Collection string // defaults to "projects"
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "penstock"
	}
	if cfg.Collection == "" {
		cfg.Collection = "projects"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save upserts the project document keyed by its id.
func (s *MongoStore) Save(ctx context.Context, p *Project) error {
	p.UpdatedAt = time.Now().UTC()
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": p.ID},
		p,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Load retrieves the project document by id.
func (s *MongoStore) Load(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	return &p, nil
}

// List returns summaries sorted by most recently updated. The snapshot
// payload is excluded via projection.
func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().
			SetProjection(bson.M{"snapshot": 0}).
			SetSort(bson.M{"updated_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	var out []Summary
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode project list: %w", err)
	}
	return out, nil
}

// Delete removes the project document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
