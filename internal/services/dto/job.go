package dto

import "time"

type CreateJobRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=120"`
	Description string    `json:"description" validate:"required,min=10"`
	Deadline    time.Time `json:"deadline" validate:"required,future"`
	Skills      []string  `json:"skills,omitempty" validate:"omitempty,dive,required"`
}

// UpdateJobRequest carries partial updates; nil fields are left untouched.
type UpdateJobRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	Description *string    `json:"description,omitempty" validate:"omitempty,min=10"`
	Deadline    *time.Time `json:"deadline,omitempty" validate:"omitempty,future"`
}

type AddSkillsRequest struct {
	Skills []string `json:"skills" validate:"required,min=1,dive,required"`
}

type UpdateJobStatusRequest struct {
	Status *int `json:"status" validate:"required,gte=0,lte=2"`
}

type JobFeedbackRequest struct {
	Rate *int   `json:"rate" validate:"required,gte=0,lte=5"`
	Text string `json:"text,omitempty" validate:"omitempty,max=50"`
}
