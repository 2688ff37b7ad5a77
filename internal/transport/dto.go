package transport

import "time"

// APIResponse is the envelope every endpoint answers with. Error bodies
// keep the same shape regardless of failure kind; only status and
// message differ.
type APIResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path,omitempty"`
}

func OK(data any, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func Error(message, path string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		Path:      path,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type FlightRequest struct {
	CarrierCode  string `json:"carrier_code"`
	FlightNumber string `json:"flight_number"`
	FlightDate   string `json:"flight_date"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}
