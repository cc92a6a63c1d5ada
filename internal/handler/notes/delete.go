package notes

import (
	"encoding/json"
	"math"
	"net/http"

	"quicknotes/internal/api"
	"quicknotes/internal/app"
	"quicknotes/internal/handler"
	"quicknotes/internal/metrics"
	"quicknotes/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DeleteNoteHandler 刪除目前使用者擁有的筆記。
// 不存在與不屬於自己的筆記都回傳相同的 {}，不透露筆記是否存在。
// @Summary     刪除筆記
// @Tags        notes
// @Accept      json
// @Produce     json
// @Param       body body api.DeleteNoteRequest true "要刪除的筆記"
// @Success     200 {object} api.EmptyResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /delete-note [post]
func DeleteNoteHandler(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentIdentity(c).User()
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
		}

		// 前端以 fetch 送出時不帶 Content-Type，直接解析 body
		var req api.DeleteNoteRequest
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "noteId is required"})
		}

		// notes.id 為 int4，超出範圍的 id 不可能存在
		if *req.NoteID < math.MinInt32 || *req.NoteID > math.MaxInt32 {
			a.Metrics.RecordNoteDeleted(metrics.ResultNoop)
			return c.JSON(http.StatusOK, api.EmptyResponse{})
		}

		deleted, err := deleteNoteOwnedBy(c.Request().Context(), a.DB, *req.NoteID, user.ID)
		if err != nil {
			a.Logger.Error("delete note failed", zap.Int("user_id", user.ID), zap.Int("note_id", *req.NoteID), zap.Error(err))
			return handler.InternalError(c)
		}
		if deleted {
			a.Metrics.RecordNoteDeleted(metrics.ResultDeleted)
		} else {
			a.Metrics.RecordNoteDeleted(metrics.ResultNoop)
		}
		return c.JSON(http.StatusOK, api.EmptyResponse{})
	}
}
