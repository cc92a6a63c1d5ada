package notes

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"quicknotes/internal/api"
	"quicknotes/internal/app"
	"quicknotes/internal/handler"
	"quicknotes/internal/middleware"
	"quicknotes/internal/model"
	"quicknotes/internal/store"
	"quicknotes/internal/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgNoteTooShort = "Note is too short!"
	msgNoteTooLong  = "Note is too long!"
	msgNoteAdded    = "New note has been added."
	msgNoteInvalid  = "Note contains invalid characters!"
)

var (
	createNote        = store.CreateNote
	listNotesByOwner  = store.ListNotesByOwner
	deleteNoteOwnedBy = store.DeleteNoteOwnedBy
)

// HomeHandler 列出目前使用者的筆記
// @Summary     筆記列表
// @Description 依建立時間由舊到新列出目前使用者的筆記
// @Tags        notes
// @Produce     json
// @Success     200 {object} api.PageResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      / [get]
func HomeHandler(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentIdentity(c).User()
		if !ok {
			return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		}
		return renderHome(c, a, user, http.StatusOK)
	}
}

// CreateNoteHandler 新增一則屬於目前使用者的筆記
// @Summary     新增筆記
// @Description 內容需為 1 到 10000 個字元
// @Tags        notes
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       note formData string true "筆記內容"
// @Success     201 {object} api.PageResponse
// @Failure     400 {object} api.PageResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      / [post]
func CreateNoteHandler(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentIdentity(c).User()
		if !ok {
			return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		}

		var req api.CreateNoteRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			msg, ok := noteViolation(err)
			if !ok {
				a.Logger.Error("note validation failed", zap.Error(err))
				return handler.InternalError(c)
			}
			return renderHome(c, a, user, http.StatusBadRequest, handler.Flash(api.FlashError, msg))
		}
		// Postgres 的 text 不接受 NUL 與非法 UTF-8
		if !utf8.ValidString(req.Note) || strings.ContainsRune(req.Note, 0) {
			return renderHome(c, a, user, http.StatusBadRequest, handler.Flash(api.FlashError, msgNoteInvalid))
		}

		n, err := createNote(c.Request().Context(), a.DB, &model.Note{Content: req.Note, OwnerID: user.ID})
		if err != nil {
			a.Logger.Error("create note failed", zap.Int("user_id", user.ID), zap.Error(err))
			return handler.InternalError(c)
		}
		a.Metrics.RecordNoteCreated()
		a.Logger.Debug("note created", zap.Int("user_id", user.ID), zap.Int("note_id", n.ID))
		return renderHome(c, a, user, http.StatusCreated, handler.Flash(api.FlashSuccess, msgNoteAdded))
	}
}

func renderHome(c echo.Context, a *app.App, user *model.User, status int, flashes ...api.Flash) error {
	notes, err := listNotesByOwner(c.Request().Context(), a.DB, user.ID)
	if err != nil {
		a.Logger.Error("list notes failed", zap.Int("user_id", user.ID), zap.Error(err))
		return handler.InternalError(c)
	}
	return handler.Page(c, status, user, notes, flashes...)
}

func noteViolation(err error) (string, bool) {
	fields, ok := validation.FailedFields(err)
	if !ok {
		return "", false
	}
	switch fields["Note"] {
	case "min":
		return msgNoteTooShort, true
	case "max":
		return msgNoteTooLong, true
	}
	return "", false
}
