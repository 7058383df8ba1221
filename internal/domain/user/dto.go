package user

// UserResponse represents user data in API responses
type UserResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	CreatedAt  string `json:"createdAt"`
}
