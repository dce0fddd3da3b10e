package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"github.com/vichannnnn/holy-grail-sub001/initializers"
	"github.com/vichannnnn/holy-grail-sub001/models"
	"github.com/vichannnnn/holy-grail-sub001/pkg/events"
	"github.com/vichannnnn/holy-grail-sub001/pkg/notify"
	"github.com/vichannnnn/holy-grail-sub001/repository"
	"github.com/vichannnnn/holy-grail-sub001/types"
)

// AdminHandler owns the moderation actions: approving pending notes and
// deleting notes. Both mutate backend truth and expect the client to
// re-fetch its current page afterwards.
type AdminHandler struct {
	repo     *repository.NotesRepository
	notifier notify.Notifier
}

func NewAdminHandler(repo *repository.NotesRepository, notifier notify.Notifier) *AdminHandler {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &AdminHandler{repo: repo, notifier: notifier}
}

// ApproveNote handles PUT /admin/approve/:id. Approving an already-approved
// note is a no-op that still returns 200. The uploader is notified over the
// realtime channel.
func (h *AdminHandler) ApproveNote(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid ID"))
		return
	}
	note, err := h.repo.GetNoteByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if note == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Note not found"))
		return
	}
	uploaderID, ok, err := h.repo.ApproveNote(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Note not found"))
		return
	}
	h.notifier.NotifyUser(uploaderID, events.NoteApproved{
		Type:         events.TypeNoteApproved,
		NoteID:       id,
		DocumentName: note.DocumentName,
	})
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"id": id}))
}

// DeleteNote handles DELETE /note/:id. Admins may delete any note; a regular
// user may delete only their own. The stored object is removed best-effort
// after the row is gone.
func (h *AdminHandler) DeleteNote(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid ID"))
		return
	}
	note, err := h.repo.GetNoteByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if note == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Note not found"))
		return
	}
	if c.GetInt("role") < models.RoleAdmin && c.GetInt("userId") != note.Account.ID {
		c.JSON(http.StatusForbidden, types.NewErrorResponse(types.ErrorCodeForbidden,
			"Only the uploader or an admin can delete a note"))
		return
	}
	fileKey, ok, err := h.repo.DeleteNote(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Note not found"))
		return
	}
	if initializers.MinioClient != nil {
		if err := initializers.MinioClient.RemoveObject(
			context.Background(), initializers.Conf.Bucket, fileKey,
			minio.RemoveObjectOptions{}); err != nil {
			slog.Warn("failed to remove stored object", "key", fileKey, "err", err)
		}
	}
	if c.GetInt("userId") != note.Account.ID {
		h.notifier.NotifyUser(note.Account.ID, events.NoteDeleted{
			Type:         events.TypeNoteDeleted,
			NoteID:       id,
			DocumentName: note.DocumentName,
		})
	}
	c.Status(http.StatusNoContent)
}
