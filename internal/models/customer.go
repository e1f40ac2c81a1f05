package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Customer is the customer-side role profile. Jobs holds references to the
// customer's active jobs, BlockedJobs the ones hidden via the block toggle.
// Both sides of every reference are maintained manually.
type Customer struct {
	BaseModel   `bson:",inline"`
	UserID      primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Jobs        []primitive.ObjectID `bson:"jobs" json:"jobs"`
	BlockedJobs []primitive.ObjectID `bson:"blocked_jobs" json:"blocked_jobs"`
}
