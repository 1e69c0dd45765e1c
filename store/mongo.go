package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"task-manager/models"
)

const (
	// DefaultMongoDatabase is used when no database name is configured.
	DefaultMongoDatabase = "taskmanager"

	mongoCollection = "tasks"
)

type mongoTask struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d mongoTask) toModel() *models.Task {
	return &models.Task{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// Mongo keeps tasks in one MongoDB collection.
type Mongo struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// OpenMongo connects to uri and pings the primary. A failed ping is returned
// as an error; the caller decides whether that is fatal.
func OpenMongo(ctx context.Context, uri, database string, timeout time.Duration) (*Mongo, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}

	clientOpts := options.Client().ApplyURI(uri)
	if timeout > 0 {
		clientOpts.SetServerSelectionTimeout(timeout).SetConnectTimeout(timeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	coll := client.Database(database).Collection(mongoCollection)
	index := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}
	if _, err := coll.Indexes().CreateOne(pingCtx, index); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create mongodb index: %w", err)
	}

	return &Mongo{client: client, coll: coll, timeout: timeout}, nil
}

// Create inserts a new document.
func (m *Mongo) Create(ctx context.Context, title string) (*models.Task, error) {
	title, err := prepareTitle(title)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, m.timeout)
	defer cancel()

	// BSON dates carry milliseconds.
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := mongoTask{
		ID:        primitive.NewObjectID(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return doc.toModel(), nil
}

// List returns all documents, newest first.
func (m *Mongo) List(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := withTimeout(ctx, m.timeout)
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := m.coll.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	var docs []mongoTask
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]models.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, *d.toModel())
	}
	return tasks, nil
}

// Delete removes the document with the given hex ObjectID.
func (m *Mongo) Delete(ctx context.Context, id string) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := withTimeout(ctx, m.timeout)
	defer cancel()

	var doc mongoTask
	err = m.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete task %s: %w", id, err)
	}
	return doc.toModel(), nil
}

// ValidID accepts 24-character hex ObjectIDs.
func (m *Mongo) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	ctx, cancel := withTimeout(context.Background(), m.timeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}
