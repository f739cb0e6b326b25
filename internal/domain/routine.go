package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routine is the saved 5-exercise plan for one pain area. One document
// per (user, area); saving again overwrites the exercise list.
type Routine struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID      primitive.ObjectID `bson:"userId" json:"-"`
	Area        string             `bson:"area" json:"area"`
	ExerciseIDs []string           `bson:"exerciseIds" json:"exerciseIds"` // glossary slugs
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Progress tracks which exercises of an area's routine the user has
// checked off. Merge-updated; cleared by saving an empty list.
type Progress struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    primitive.ObjectID `bson:"userId" json:"-"`
	Area      string             `bson:"area" json:"area"`
	Completed []string           `bson:"completed" json:"completed"` // glossary slugs
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HistoryEntry is one completed routine. Append-only.
type HistoryEntry struct {
	ID          string             `bson:"_id" json:"id"` // uuid
	UserID      primitive.ObjectID `bson:"userId" json:"-"`
	Area        string             `bson:"area" json:"area"`
	ExerciseIDs []string           `bson:"exerciseIds" json:"exerciseIds"`
	CompletedAt time.Time          `bson:"completedAt" json:"completedAt"`
}

// Favorite is a bookmarked exercise. Keyed by (user, exercise slug);
// stores a denormalized snapshot so the favorites page renders without
// touching the glossary.
type Favorite struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID     primitive.ObjectID `bson:"userId" json:"-"`
	ExerciseID string             `bson:"exerciseId" json:"id"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	BodyPart   string             `bson:"bodyPart,omitempty" json:"bodyPart,omitempty"`
	Target     string             `bson:"target,omitempty" json:"target,omitempty"`
	Equipment  string             `bson:"equipment,omitempty" json:"equipment,omitempty"`
	GifURL     string             `bson:"gifUrl,omitempty" json:"gifUrl,omitempty"`
	SavedAt    time.Time          `bson:"savedAt" json:"savedAt"`
}
