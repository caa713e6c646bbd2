package models

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
}

// LoginResult is the body of POST /auth/login.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
