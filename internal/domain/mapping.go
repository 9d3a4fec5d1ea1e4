package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenusExperienceMapping pairs a genus (role/track) with an experience band.
// The (genus, experienceRange) pair is unique; ExperienceRange is a
// "start-end" string in years, e.g. "2-5".
type GenusExperienceMapping struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Genus           string             `bson:"genus" json:"genus"`
	ExperienceRange string             `bson:"experienceRange" json:"experienceRange"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
