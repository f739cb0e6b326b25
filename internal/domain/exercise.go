// internal/domain/exercise.go
package domain

import "time"

// Exercise is one entry in the exercise_glossary collection.
// Documents are keyed by the slug of the display name, so "Pull-Up"
// lives under id "pull-up". Records are created by seeding or by the
// resolver's on-demand catalog upsert and are only ever merge-updated,
// never deleted.
type Exercise struct {
	ID          string   `bson:"_id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	TargetAreas []string `bson:"targetAreas,omitempty" json:"targetAreas,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`

	HelpsWith    []string `bson:"helpsWith,omitempty" json:"helpsWith,omitempty"`
	MayAggravate []string `bson:"mayAggravate,omitempty" json:"mayAggravate,omitempty"`
	SafetyNotes  []string `bson:"safetyNotes,omitempty" json:"safetyNotes,omitempty"`

	// Alternate spellings users might type ("pull up", "pull-up", "pullups").
	// Must stay consistent with slug.AliasVariants(Name) or the alias lookup
	// stage silently falls through to the slower scan.
	Aliases []string `bson:"aliases,omitempty" json:"aliases,omitempty"`

	// Raw fields carried over from the ExerciseDB catalog when the record
	// was created by the on-demand upsert path.
	Equipment        string   `bson:"equipment,omitempty" json:"equipment,omitempty"`
	BodyPart         string   `bson:"bodyPart,omitempty" json:"bodyPart,omitempty"`
	Target           string   `bson:"target,omitempty" json:"target,omitempty"`
	SecondaryMuscles []string `bson:"secondaryMuscles,omitempty" json:"secondaryMuscles,omitempty"`
	GifURL           string   `bson:"gifUrl,omitempty" json:"gifUrl,omitempty"`

	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
