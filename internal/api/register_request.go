package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" form:"email" example:"johndoe@example.com"`
	Password string `json:"password" form:"password" example:"password"`
}
