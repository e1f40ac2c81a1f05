package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Skill is a named tag. Jobs and Freelancers are denormalized back-references
// kept in sync by hand on every add/remove.
type Skill struct {
	BaseModel   `bson:",inline"`
	Name        string               `bson:"name" json:"name"`
	Jobs        []primitive.ObjectID `bson:"jobs" json:"jobs"`
	Freelancers []primitive.ObjectID `bson:"freelancers" json:"freelancers"`
}
