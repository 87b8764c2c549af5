package dto

// LoginRequest carries the login credentials. Users log in with their phone
// number, not their email.
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the payload for a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Token   string `json:"token"`
}
