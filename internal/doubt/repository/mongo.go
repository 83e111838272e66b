package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studyhub/studyhub/backend/go-services/internal/apperr"
	"github.com/studyhub/studyhub/backend/go-services/internal/doubt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on the "doubts" collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, d *doubt.Doubt) error {
	now := time.Now().UTC()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.Answers == nil {
		d.Answers = []doubt.Answer{}
	}
	if _, err := m.col.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert doubt: %w", err)
	}
	return nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*doubt.Doubt, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("doubt %q: %w", id, apperr.ErrNotFound)
	}
	var d doubt.Doubt
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("doubt %q: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("find doubt: %w", err)
	}
	return &d, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*doubt.Doubt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find doubts: %w", err)
	}
	defer cur.Close(ctx)
	out := []*doubt.Doubt{}
	for cur.Next(ctx) {
		var d doubt.Doubt
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode doubt: %w", err)
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

// AddAnswer uses $push so concurrent answers never overwrite each other.
func (m *MongoRepo) AddAnswer(ctx context.Context, id string, a doubt.Answer) (*doubt.Doubt, error) {
	now := time.Now().UTC()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	update := bson.M{
		"$push": bson.M{"answers": a},
		"$set":  bson.M{"updatedAt": now},
	}
	return m.findAndUpdate(ctx, id, update)
}

func (m *MongoRepo) SetResolved(ctx context.Context, id string, resolved bool) (*doubt.Doubt, error) {
	update := bson.M{"$set": bson.M{"isResolved": resolved, "updatedAt": time.Now().UTC()}}
	return m.findAndUpdate(ctx, id, update)
}

func (m *MongoRepo) findAndUpdate(ctx context.Context, id string, update bson.M) (*doubt.Doubt, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("doubt %q: %w", id, apperr.ErrNotFound)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d doubt.Doubt
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("doubt %q: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("update doubt: %w", err)
	}
	return &d, nil
}
