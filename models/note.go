package models

import "time"

// Note is a single uploaded document (notes, practice papers) pending or
// approved for the public library. The backend owns every field; clients
// only mutate notes through approve/delete and then re-fetch.
type Note struct {
	ID           int          `json:"id"`
	Category     int          `json:"category"`
	Subject      int          `json:"subject"`
	Type         int          `json:"type"`
	DocCategory  CategoryType `json:"doc_category"`
	DocSubject   SubjectType  `json:"doc_subject"`
	DocType      DocumentType `json:"doc_type"`
	DocumentName string       `json:"document_name"`
	FileName     string       `json:"file_name"`
	Account      Uploader     `json:"account"`
	UploadedOn   time.Time    `json:"uploaded_on"`
	Year         *int         `json:"year,omitempty"`
	Extension    *string      `json:"extension,omitempty"`
	Approved     bool         `json:"-"`
}

// Uploader is the embedded display object for the uploading account.
type Uploader struct {
	ID       int    `json:"user_id"`
	Username string `json:"username"`
}

// NoteFilters carries the listing filters parsed from the request.
// A zero value on any field means no filter on that dimension.
type NoteFilters struct {
	Category           string
	Subject            string
	DocType            string
	Keyword            string
	Year               int
	Page               int
	Size               int
	SortedByUploadDate string
}
