package handlers

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/vichannnnn/holy-grail-sub001/initializers"
	"github.com/vichannnnn/holy-grail-sub001/repository"
	"github.com/vichannnnn/holy-grail-sub001/types"
)

// UploadsHandler accepts new documents into the moderation queue.
type UploadsHandler struct {
	notesRepo *repository.NotesRepository
}

func NewUploadsHandler(notesRepo *repository.NotesRepository) *UploadsHandler {
	return &UploadsHandler{notesRepo: notesRepo}
}

// UploadNote handles POST /upload (multipart). The MIME type is sniffed from
// the file content, never trusted from the client header. The note row is
// created pending; it only appears in /notes/approved after moderation.
func (h *UploadsHandler) UploadNote(c *gin.Context) {
	userID := c.GetInt("userId")

	// The cap must be installed before any form access: the first PostForm
	// call parses (and therefore reads) the whole multipart body. The margin
	// over MaxSize covers the multipart framing and the text fields.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body,
		initializers.Conf.MaxSize+(1<<20))
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, types.NewErrorResponse(types.ErrorCodeValidation,
				"file size exceeds the limit"))
			return
		}
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"invalid multipart form"))
		return
	}

	documentName := strings.TrimSpace(c.PostForm("document_name"))
	if documentName == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"document_name is required"))
		return
	}
	categoryID, err := strconv.Atoi(c.PostForm("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"invalid category"))
		return
	}
	subjectID, err := strconv.Atoi(c.PostForm("subject"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"invalid subject"))
		return
	}
	docTypeID, err := strconv.Atoi(c.PostForm("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"invalid type"))
		return
	}
	var year *int
	if raw := c.PostForm("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
				"invalid year"))
			return
		}
		// Year 0 is the legacy "unset" form default; treat it as absent.
		if y > 0 {
			year = &y
		}
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"file is required"))
		return
	}

	sniff, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"cannot open uploaded file"))
		return
	}
	mt, err := mimetype.DetectReader(sniff)
	_ = sniff.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"cannot detect file type"))
		return
	}
	if err := initializers.CheckFileAllowed(file.Size, mt.String()); err != nil {
		c.JSON(http.StatusUnprocessableEntity, types.NewErrorResponse(types.ErrorCodeValidation,
			err.Error()))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectKey := uuid.NewString() + ext

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation,
			"cannot open uploaded file"))
		return
	}
	defer src.Close()

	_, err = initializers.MinioClient.PutObject(
		context.Background(), initializers.Conf.Bucket, objectKey, src, file.Size,
		minio.PutObjectOptions{ContentType: mt.String()})
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal,
			"failed to store file"))
		return
	}

	var extension *string
	if ext != "" {
		extension = &ext
	}
	note, err := h.notesRepo.CreateNote(userID, categoryID, subjectID, docTypeID,
		documentName, objectKey, year, extension)
	if err != nil {
		// Roll back the stored object so orphans do not accumulate.
		_ = initializers.MinioClient.RemoveObject(
			context.Background(), initializers.Conf.Bucket, objectKey,
			minio.RemoveObjectOptions{})
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal,
			err.Error()))
		return
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(note))
}
