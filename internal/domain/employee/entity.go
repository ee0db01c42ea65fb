package employee

import "time"

// Employee entity. Employees are created at onboarding and never
// deleted while leave requests reference them.
type Employee struct {
	ID           string
	FullName     string
	NIP          string // civil-servant employee number
	Department   string
	Email        string
	PasswordHash string
	IsAdmin      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
