package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vichannnnn/holy-grail-sub001/initializers"
)

func uploadTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUploadsHandler(nil)
	r.POST("/upload", func(c *gin.Context) {
		c.Set("userId", 1)
		h.UploadNote(c)
	})
	return r
}

func multipartUpload(t *testing.T, fileSize int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("document_name", "Chemistry Notes"))
	require.NoError(t, w.WriteField("category", "1"))
	require.NoError(t, w.WriteField("subject", "1"))
	require.NoError(t, w.WriteField("type", "1"))
	fw, err := w.CreateFormFile("file", "notes.pdf")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("a"), fileSize))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// An oversized body must be cut off at the reader, before the form fields
// are even parsed, and answered with 413 rather than buffered in full.
func TestUploadNoteRejectsOversizedBody(t *testing.T) {
	prev := initializers.Conf
	defer func() { initializers.Conf = prev }()
	initializers.Conf = initializers.MinioConfig{
		MaxSize:   1024,
		FileTypes: []string{"application/pdf"},
	}

	r := uploadTestRouter()
	body, contentType := multipartUpload(t, 4<<20)

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUploadNoteRejectsNonMultipartBody(t *testing.T) {
	prev := initializers.Conf
	defer func() { initializers.Conf = prev }()
	initializers.Conf = initializers.MinioConfig{MaxSize: 1024}

	r := uploadTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/upload",
		bytes.NewBufferString(`{"document_name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
