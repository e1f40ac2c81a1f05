package dto

type UpdateSalaryRequest struct {
	Salary *float64 `json:"salary" validate:"required,gte=0"`
}
