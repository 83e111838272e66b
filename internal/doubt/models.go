package doubt

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doubt is a question posted to the Q&A board, stored in the "doubts" collection.
type Doubt struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Question    string             `json:"question" bson:"question"`
	Description string             `json:"description" bson:"description"`
	Author      string             `json:"author" bson:"author"`
	Tags        []string           `json:"tags" bson:"tags"`
	IsResolved  bool               `json:"isResolved" bson:"isResolved"`
	Answers     []Answer           `json:"answers" bson:"answers"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Answer is embedded in its doubt. Answers are only ever appended.
type Answer struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Text      string             `json:"text" bson:"text"`
	Author    string             `json:"author" bson:"author"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
