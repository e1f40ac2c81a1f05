package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is the identity document. At most one of CustomerID/FreelancerID is
// set, determined by Role.
type User struct {
	BaseModel    `bson:",inline"`
	FirstName    string   `bson:"first_name" json:"first_name"`
	LastName     string   `bson:"last_name" json:"last_name"`
	Age          int      `bson:"age,omitempty" json:"age,omitempty"`
	Email        string   `bson:"email" json:"email"`
	Username     string   `bson:"username" json:"username"`
	PasswordHash string   `bson:"password_hash" json:"-"`
	PhoneNumber  string   `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Role         UserRole `bson:"role" json:"role"`
	Description  string   `bson:"description,omitempty" json:"description,omitempty"`
	Image        string   `bson:"image" json:"image"`

	CustomerID   *primitive.ObjectID `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	FreelancerID *primitive.ObjectID `bson:"freelancer_id,omitempty" json:"freelancer_id,omitempty"`
}

// DefaultImage is the placeholder profile picture. It is never deleted from
// storage when a user replaces their image.
const DefaultImage = "user.png"
