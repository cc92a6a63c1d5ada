package api

// SignUpRequest 欄位順序與驗證規則順序無關，訊息優先序由 handler 決定
// swagger:model api.SignUpRequest
type SignUpRequest struct {
	Email     string `form:"email" validate:"min=4" example:"alice@example.com"`
	FirstName string `form:"firstName" validate:"min=3" example:"Alice"`
	Password1 string `form:"password1" validate:"min=3" example:"Secret123!"`
	Password2 string `form:"password2" validate:"eqfield=Password1" example:"Secret123!"`
}
