package api

// swagger:model api.LoginResponse
type LoginResponse struct {
	Message     string `json:"message" example:"User logged in successfully"`
	AccessToken string `json:"access_token" example:"eyJhbGciOi..."`
}
