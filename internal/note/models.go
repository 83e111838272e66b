package note

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is a user's study note as stored in the "notes" collection.
type Note struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	Author    string             `json:"author" bson:"author"`
	Tags      []string           `json:"tags" bson:"tags"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Patch lists the fields of a partial update. Empty strings and nil tags
// leave the stored value untouched.
type Patch struct {
	Title   string
	Content string
	Tags    []string
}

// Apply copies the set fields of p onto n.
func (p Patch) Apply(n *Note) {
	if p.Title != "" {
		n.Title = p.Title
	}
	if p.Content != "" {
		n.Content = p.Content
	}
	if p.Tags != nil {
		n.Tags = p.Tags
	}
}
