package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vichannnnn/holy-grail-sub001/initializers"
	"github.com/vichannnnn/holy-grail-sub001/models"
	"github.com/vichannnnn/holy-grail-sub001/repository"
	"github.com/vichannnnn/holy-grail-sub001/types"
)

type NotesHandler struct {
	repo *repository.NotesRepository
}

func NewNotesHandler(repo *repository.NotesRepository) *NotesHandler {
	return &NotesHandler{repo: repo}
}

// parseNoteFilters reads the listing query params. Absent params stay zero,
// which SearchNotes treats as "no filter on that dimension". Unparseable
// numbers are dropped rather than rejected; the library listing never 400s
// over filter noise.
func parseNoteFilters(c *gin.Context) models.NoteFilters {
	p := types.ParsePagination(c)
	year, _ := strconv.Atoi(c.Query("year"))
	return models.NoteFilters{
		Category:           c.Query("category"),
		Subject:            c.Query("subject"),
		DocType:            c.Query("doc_type"),
		Keyword:            c.Query("keyword"),
		Year:               year,
		Page:               p.Page,
		Size:               p.Size,
		SortedByUploadDate: c.Query("sorted_by_upload_date"),
	}
}

func (h *NotesHandler) listNotes(c *gin.Context, approved bool) {
	filters := parseNoteFilters(c)
	notes, total, err := h.repo.SearchNotes(approved, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	helper := types.NewPaginationHelper(filters.Page, filters.Size)
	c.JSON(http.StatusOK, helper.BuildResult(notes, total))
}

// GetApprovedNotes handles GET /notes/approved, the public library listing.
func (h *NotesHandler) GetApprovedNotes(c *gin.Context) {
	h.listNotes(c, true)
}

// GetPendingNotes handles GET /notes/pending, the moderation queue. Routing
// guards it with RequireAdmin; the request/response shapes match the
// approved listing exactly.
func (h *NotesHandler) GetPendingNotes(c *gin.Context) {
	h.listNotes(c, false)
}

// GetNote handles GET /note/:id.
func (h *NotesHandler) GetNote(c *gin.Context) {
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
	if !note.Approved && c.GetInt("role") < models.RoleAdmin && c.GetInt("userId") != note.Account.ID {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Note not found"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(note))
}

// GetNoteSubroute handles the two-segment GET forms under /note/. The route
// is registered as /note/:id/:sub because the router cannot hold a literal
// "download" segment beside the :id wildcard; the first segment selects the
// operation and anything unknown is a 404.
func (h *NotesHandler) GetNoteSubroute(c *gin.Context) {
	if c.Param("id") == "download" {
		h.downloadNote(c, c.Param("sub"))
		return
	}
	c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Not found"))
}

// downloadNote serves GET /note/download/:id by returning a presigned URL
// for the stored object. Only approved notes are downloadable by non-admins.
func (h *NotesHandler) downloadNote(c *gin.Context, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid ID"))
		return
	}
	note, err := h.repo.GetNoteByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if note == nil || (!note.Approved && c.GetInt("role") < models.RoleAdmin) {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Note not found"))
		return
	}
	downloadName := note.DocumentName
	if note.Extension != nil {
		downloadName += *note.Extension
	}
	url, err := initializers.GenerateDownloadURL(note.FileName, downloadName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"url": url}))
}
