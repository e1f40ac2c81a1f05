package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Freelancer is the freelancer-side role profile.
//
// Rating is derived from the feedback of FinishJobs and recomputed (and
// persisted) on every profile read; it is 0 while FinishJobs is empty.
type Freelancer struct {
	BaseModel   `bson:",inline"`
	UserID      primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Salary      float64              `bson:"salary" json:"salary"`
	Rating      float64              `bson:"rating" json:"rating"`
	Skills      []primitive.ObjectID `bson:"skills" json:"skills"`
	RequestJobs []primitive.ObjectID `bson:"request_jobs" json:"request_jobs"`
	FinishJobs  []primitive.ObjectID `bson:"finish_jobs" json:"finish_jobs"`
	Jobs        []primitive.ObjectID `bson:"jobs" json:"jobs"`
}
