package dto

type CreateSkillRequest struct {
	Name string `json:"name" validate:"required,min=2,max=64"`
}
