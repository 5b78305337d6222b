package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cv-generator/internal/model"
	"cv-generator/internal/slug"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRecord struct {
	Slug      string    `bson:"slug"`
	Data      bson.Raw  `bson:"data"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoStore keeps one document per slug, with a unique index on slug so
// inserts double as the atomic claim.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore ensures the slug index exists before returning the store.
func NewMongoStore(ctx context.Context, col *mongo.Collection) (*MongoStore, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("ensure slug index: %w", err)
	}
	return &MongoStore{col: col}, nil
}

// toBSON converts the canonical JSON form into a BSON document.
func toBSON(cv model.CV) (bson.Raw, error) {
	b, err := encodeCV(cv)
	if err != nil {
		return nil, err
	}
	var doc bson.D
	if err := bson.UnmarshalExtJSON(b, false, &doc); err != nil {
		return nil, fmt.Errorf("convert cv: %w", err)
	}
	return bson.Marshal(doc)
}

func (m *MongoStore) Put(ctx context.Context, key string, cv model.CV) error {
	if err := checkWriteSlug(key); err != nil {
		return err
	}
	data, err := toBSON(cv)
	if err != nil {
		return err
	}
	now := time.Now()
	update := bson.M{
		"$set":         bson.M{"data": data, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := m.col.UpdateOne(ctx, bson.M{"slug": key}, update, opts); err != nil {
		return fmt.Errorf("save cv %s: %w", key, err)
	}
	return nil
}

func (m *MongoStore) Create(ctx context.Context, key string, cv model.CV) error {
	if err := checkWriteSlug(key); err != nil {
		return err
	}
	data, err := toBSON(cv)
	if err != nil {
		return err
	}
	now := time.Now()
	rec := mongoRecord{Slug: key, Data: data, CreatedAt: now, UpdatedAt: now}
	if _, err := m.col.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return taken(key)
		}
		return fmt.Errorf("insert cv %s: %w", key, err)
	}
	return nil
}

func (m *MongoStore) Get(ctx context.Context, key string) (model.CV, error) {
	if !slug.Valid(key) {
		return model.CV{}, notFound(key, nil)
	}
	var rec mongoRecord
	if err := m.col.FindOne(ctx, bson.M{"slug": key}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.CV{}, notFound(key, nil)
		}
		return model.CV{}, notFound(key, err)
	}
	b, err := bson.MarshalExtJSON(rec.Data, false, false)
	if err != nil {
		return model.CV{}, notFound(key, err)
	}
	return decodeCV(key, b)
}

func (m *MongoStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := m.col.CountDocuments(ctx, bson.M{"slug": key}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("probe cv %s: %w", key, err)
	}
	return n > 0, nil
}
