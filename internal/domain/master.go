package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Importance classifies how strongly a master-matrix row requires its skill.
type Importance string

const (
	ImportanceMustHave   Importance = "Must Have"
	ImportanceGoodToHave Importance = "Good to Have"
)

// Valid reports whether the value is one of the two allowed importance levels.
func (i Importance) Valid() bool {
	return i == ImportanceMustHave || i == ImportanceGoodToHave
}

// MasterEntry is one row of the admin-facing requirement matrix: for a given
// (experienceRange, genus) band, the named skill from CategoryID is required
// at the given importance. Skill is a denormalized copy of the skill name;
// renames on the category side must be mirrored here via the bulk update.
type MasterEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExperienceRange string             `bson:"experienceRange" json:"experienceRange"`
	Genus           string             `bson:"genus" json:"genus"`
	CategoryID      primitive.ObjectID `bson:"category" json:"categoryId"`
	Skill           string             `bson:"skill" json:"skill"`
	Importance      Importance         `bson:"importance" json:"importance"`
	Flagged         bool               `bson:"flagged" json:"flagged"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MasterEntryDetail is a master row joined with its category document for
// read responses. Flagged mirrors, at read time, whether the referenced
// skill is currently soft-deleted.
type MasterEntryDetail struct {
	MasterEntry `bson:",inline"`
	Category    Category `bson:"categoryDoc" json:"category"`
}
