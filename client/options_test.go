package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFilterOptionsAllDimensions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/all_category_level":
			_ = json.NewEncoder(w).Encode([]Category{{ID: 1, Name: "GCE 'O' Levels"}})
		case "/all_document_type":
			_ = json.NewEncoder(w).Encode([]DocumentType{{ID: 1, Name: "Notes"}, {ID: 2, Name: "Practice Papers"}})
		case "/all_subjects":
			assert.Equal(t, "1", r.URL.Query().Get("category_id"))
			_ = json.NewEncoder(w).Encode([]Subject{{ID: 5, Name: "Mathematics", Category: Category{ID: 1, Name: "GCE 'O' Levels"}}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	categoryID := 1
	opts := c.LoadFilterOptions(context.Background(), &categoryID)

	require.Len(t, opts.Categories, 1)
	require.Len(t, opts.DocTypes, 2)
	require.Len(t, opts.Subjects, 1)
	assert.Equal(t, "Mathematics", opts.Subjects[0].Name)
}

func TestLoadFilterOptionsFailuresAreIndependent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/all_category_level":
			w.WriteHeader(http.StatusInternalServerError)
		case "/all_document_type":
			_ = json.NewEncoder(w).Encode([]DocumentType{{ID: 1, Name: "Notes"}})
		case "/all_subjects":
			assert.False(t, r.URL.Query().Has("category_id"))
			_ = json.NewEncoder(w).Encode([]Subject{{ID: 9, Name: "English"}})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	opts := c.LoadFilterOptions(context.Background(), nil)

	assert.NotNil(t, opts.Categories)
	assert.Empty(t, opts.Categories, "failed dimension yields an empty list, not an error")
	assert.Len(t, opts.DocTypes, 1)
	assert.Len(t, opts.Subjects, 1)
}
