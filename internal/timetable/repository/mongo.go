package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/studyhub/studyhub/backend/go-services/internal/timetable"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on the "timetables" collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// one timetable per author; also turns a lost upsert race into a
	// duplicate key error instead of a second document
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "author", Value: 1}}, Options: options.Index().SetUnique(true)}
	_, _ = col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) GetOrCreate(ctx context.Context, author string) (*timetable.Timetable, error) {
	now := time.Now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"schedule":  timetable.DefaultSchedule(),
		"createdAt": now,
		"updatedAt": now,
	}}
	tt, err := m.upsert(ctx, author, update)
	if err != nil {
		return nil, fmt.Errorf("get timetable: %w", err)
	}
	return tt, nil
}

func (m *MongoRepo) Save(ctx context.Context, author string, schedule []timetable.DaySchedule) (*timetable.Timetable, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set":         bson.M{"schedule": schedule, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	tt, err := m.upsert(ctx, author, update)
	if err != nil {
		return nil, fmt.Errorf("save timetable: %w", err)
	}
	return tt, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*timetable.Timetable, error) {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "author", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find timetables: %w", err)
	}
	out := []*timetable.Timetable{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode timetables: %w", err)
	}
	return out, nil
}

// upsert applies update to the author's document, inserting it when absent.
// The author field of an inserted document comes from the filter.
func (m *MongoRepo) upsert(ctx context.Context, author string, update bson.M) (*timetable.Timetable, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var tt timetable.Timetable
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"author": author}, update, opts).Decode(&tt); err != nil {
		return nil, err
	}
	return &tt, nil
}
