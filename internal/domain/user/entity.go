package user

import "time"

// User represents an account that can sign in to the lab tracker
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt digest, never exposed
	CreatedAt time.Time `json:"createdAt"`
}

// UserResponse is the safe user representation for API responses
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// ToResponse converts a User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
	}
}
