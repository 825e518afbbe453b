package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

// ErrNoSnapshot is returned when the collection holds no snapshot yet.
var ErrNoSnapshot = errors.New("no cohort snapshot stored")

// Repository defines the interface for cohort snapshot storage.
type Repository interface {
	SaveSnapshot(ctx context.Context, snapshot models.CohortSnapshot) error
	LatestSnapshot(ctx context.Context) (*models.CohortSnapshot, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "cohort_snapshots",
	}, nil
}

// SaveSnapshot stores a copy of the grouped cohorts.
func (r *MongoDBRepository) SaveSnapshot(ctx context.Context, snapshot models.CohortSnapshot) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert cohort snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recently created snapshot.
func (r *MongoDBRepository) LatestSnapshot(ctx context.Context) (*models.CohortSnapshot, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var snapshot models.CohortSnapshot
	if err := collection.FindOne(ctx, bson.D{}, opts).Decode(&snapshot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to load latest cohort snapshot: %w", err)
	}
	return &snapshot, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
