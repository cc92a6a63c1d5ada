package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `form:"email" example:"alice@example.com"`
	Password string `form:"password" example:"Secret123!"`
}
