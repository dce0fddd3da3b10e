package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vichannnnn/holy-grail-sub001/repository"
	"github.com/vichannnnn/holy-grail-sub001/types"
)

type FavouritesHandler struct {
	repo      *repository.FavouritesRepository
	notesRepo *repository.NotesRepository
}

func NewFavouritesHandler(repo *repository.FavouritesRepository, notesRepo *repository.NotesRepository) *FavouritesHandler {
	return &FavouritesHandler{repo: repo, notesRepo: notesRepo}
}

type favouriteRequest struct {
	NoteID int `json:"note_id" binding:"required"`
}

// Add handles POST /favourites/add. Only approved notes can be favourited.
func (h *FavouritesHandler) Add(c *gin.Context) {
	var req favouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	note, err := h.notesRepo.GetNoteByID(req.NoteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if note == nil || !note.Approved {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Note not found"))
		return
	}
	if err := h.repo.Add(c.GetInt("userId"), req.NoteID); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(nil))
}

// Remove handles POST /favourites/remove. Removing a note that was never
// favourited is a no-op success.
func (h *FavouritesHandler) Remove(c *gin.Context) {
	var req favouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if err := h.repo.Remove(c.GetInt("userId"), req.NoteID); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(nil))
}

// Check handles GET /favourites/check/:id, answering whether the caller has
// favourited the given note. Used to render the toggle state on detail pages.
func (h *FavouritesHandler) Check(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid ID"))
		return
	}
	favourited, err := h.repo.IsFavourited(c.GetInt("userId"), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"favourited": favourited}))
}

// List handles GET /favourites/ with the same page metadata shape as the
// library listing.
func (h *FavouritesHandler) List(c *gin.Context) {
	helper := types.ParsePagination(c)
	notes, total, err := h.repo.ListByUser(c.GetInt("userId"), helper.Page, helper.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, helper.BuildResult(notes, total))
}
