package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studyhub/studyhub/backend/go-services/internal/apperr"
	"github.com/studyhub/studyhub/backend/go-services/internal/note"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on the "notes" collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// list queries sort on updatedAt
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "updatedAt", Value: -1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, n *note.Note) error {
	now := time.Now().UTC()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	n.CreatedAt = now
	n.UpdatedAt = now
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if _, err := m.col.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*note.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("note %q: %w", id, apperr.ErrNotFound)
	}
	var n note.Note
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("note %q: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return &n, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*note.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer cur.Close(ctx)
	out := []*note.Note{}
	for cur.Next(ctx) {
		var n note.Note
		if err := cur.Decode(&n); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		out = append(out, &n)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Update(ctx context.Context, id string, p note.Patch) (*note.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("note %q: %w", id, apperr.ErrNotFound)
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	if p.Title != "" {
		set["title"] = p.Title
	}
	if p.Content != "" {
		set["content"] = p.Content
	}
	if p.Tags != nil {
		set["tags"] = p.Tags
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n note.Note
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("note %q: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &n, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("note %q: %w", id, apperr.ErrNotFound)
	}
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("note %q: %w", id, apperr.ErrNotFound)
	}
	return nil
}
