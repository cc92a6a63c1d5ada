package handler

import (
	"net/http"

	"quicknotes/internal/api"
	"quicknotes/internal/model"

	"github.com/labstack/echo/v4"
)

// Page 以 JSON 呈現頁面：目前使用者、筆記（nil 時省略）與訊息
func Page(c echo.Context, status int, user *model.User, notes []model.Note, flashes ...api.Flash) error {
	resp := api.PageResponse{
		Flashes: flashes,
		User:    api.NewUserResponse(user),
	}
	if resp.Flashes == nil {
		resp.Flashes = []api.Flash{}
	}
	if notes != nil {
		resp.Notes = api.NewNoteResponses(notes)
	}
	return c.JSON(status, resp)
}

// Flash 建立單一訊息
func Flash(category, message string) api.Flash {
	return api.Flash{Category: category, Message: message}
}

// InternalError 回傳 500，訊息不含內部細節
func InternalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
}
