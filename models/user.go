package models

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// UserProfile is the buyer identity as served by /api/users/me/{id}.
type UserProfile struct {
	ID          string   `json:"_id"`
	Username    string   `json:"username"`
	PhoneNumber string   `json:"phonenumber"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Role        UserRole `json:"role"`
}

// LoginResult is the upstream /api/users/login response.
type LoginResult struct {
	User   UserProfile `json:"user"`
	UserID string      `json:"userId"`
}
