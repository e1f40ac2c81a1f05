package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is the post-completion rating left by the owning customer.
// Settable only once the job status is END.
type Feedback struct {
	Rate int    `bson:"rate" json:"rate"`
	Text string `bson:"text" json:"text"`
}

// Job is the central workflow entity. CustomerID is immutable after
// creation. FreelancerID is set via assignment, which also clears
// RequestFreelancers on both sides.
type Job struct {
	BaseModel          `bson:",inline"`
	Title              string               `bson:"title" json:"title"`
	Description        string               `bson:"description" json:"description"`
	Deadline           time.Time            `bson:"deadline" json:"deadline"`
	Status             JobStatus            `bson:"status" json:"status"`
	IsBlock            bool                 `bson:"is_block" json:"is_block"`
	CustomerID         primitive.ObjectID   `bson:"customer_id" json:"customer_id"`
	FreelancerID       *primitive.ObjectID  `bson:"freelancer_id,omitempty" json:"freelancer_id,omitempty"`
	RequestFreelancers []primitive.ObjectID `bson:"request_freelancers" json:"request_freelancers"`
	Skills             []primitive.ObjectID `bson:"skills" json:"skills"`
	Feedback           *Feedback            `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

// Assigned reports whether a freelancer has been assigned to the job.
func (j *Job) Assigned() bool {
	return j.FreelancerID != nil && !j.FreelancerID.IsZero()
}

// HasRequest reports whether the freelancer already applied to the job.
func (j *Job) HasRequest(freelancerID primitive.ObjectID) bool {
	for _, id := range j.RequestFreelancers {
		if id == freelancerID {
			return true
		}
	}
	return false
}
