package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanUserDetails is the identity snapshot embedded in a trainee plan.
// The email is the lookup key; firstname/lastname are verified on update.
type PlanUserDetails struct {
	Firstname string `bson:"firstname" json:"firstname"`
	Lastname  string `bson:"lastname" json:"lastname"`
	Email     string `bson:"email" json:"email"`
}

// PlanItem is one scheduled course in a trainee's plan. CourseStartDate and
// CourseEndDate are computed by the schedule composer and are contiguous
// across the ordered item list.
type PlanItem struct {
	ExperienceRange string     `bson:"experienceRange" json:"experienceRange"`
	Genus           string     `bson:"genus" json:"genus"`
	Category        string     `bson:"category" json:"category"`
	Skills          string     `bson:"skills" json:"skills"`
	MustHaveSkill   Importance `bson:"mustHaveSkill" json:"mustHaveSkill"`
	CourseDuration  string     `bson:"courseDuration" json:"courseDuration"`
	CourseStartDate time.Time  `bson:"courseStartDate" json:"courseStartDate"`
	CourseEndDate   time.Time  `bson:"courseEndDate" json:"courseEndDate"`
}

// TraineePlan is the finalized, per-person training schedule. One document
// exists per trainee, keyed by the embedded email; edits replace the item
// list wholesale.
type TraineePlan struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserDetails         PlanUserDetails    `bson:"userDetails" json:"userDetails"`
	TrainingPlanDetails []PlanItem         `bson:"trainingPlanDetails" json:"trainingPlanDetails"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}
