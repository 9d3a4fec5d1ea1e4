package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Skill is a single course embedded in a Category. CourseDuration is the
// length of the course in calendar days, kept as a string on the wire.
type Skill struct {
	SkillName      string `bson:"skillName" json:"skillName"`
	IsSkillDeleted bool   `bson:"isSkillDeleted" json:"isSkillDeleted"`
	CourseDuration string `bson:"courseDuration" json:"courseDuration"`
}

// Category groups skills under a normalized, unique name. Categories and
// skills are soft-deleted only; the deleted flag hides them from planning
// but keeps master-matrix references resolvable.
type Category struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"` // Unique, normalized
	Skills            []Skill            `bson:"skills" json:"skills"`
	IsCategoryDeleted bool               `bson:"isCategoryDeleted" json:"isCategoryDeleted"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FindSkill returns the index of the named skill, or -1.
// When activeOnly is set, soft-deleted skills are skipped.
func (c *Category) FindSkill(name string, activeOnly bool) int {
	for i, s := range c.Skills {
		if s.SkillName != name {
			continue
		}
		if activeOnly && s.IsSkillDeleted {
			continue
		}
		return i
	}
	return -1
}
