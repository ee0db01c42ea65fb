package employee

import (
	"time"

	"github.com/cutikita/leave-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName   string `json:"full_name"`
	NIP        string `json:"nip"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsAdmin    bool   `json:"is_admin"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}

	if !validator.IsValidNIP(r.NIP) {
		errs = append(errs, validator.ValidationError{
			Field:   "nip",
			Message: "nip must be an 18-digit employee number",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	NIP        string    `json:"nip"`
	Department string    `json:"department"`
	Email      string    `json:"email"`
	IsAdmin    bool      `json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		NIP:        e.NIP,
		Department: e.Department,
		Email:      e.Email,
		IsAdmin:    e.IsAdmin,
		CreatedAt:  e.CreatedAt,
	}
}
