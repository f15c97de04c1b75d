package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" form:"email" example:"johndoe@example.com"`
	Password string `json:"password" form:"password" example:"password"`
}
