// Package client implements the library data-fetching flow used by every
// Holy Grail frontend: query-param encoding of search filters, the paginated
// notes fetch with discriminated ok/err results, concurrent filter-option
// loading, debounced navigation, and the view-state selection the render
// layer consumes. It talks to the REST API served by this repository.
package client

import "time"

// Note mirrors the wire shape of a library document.
type Note struct {
	ID           int          `json:"id"`
	Category     int          `json:"category"`
	Subject      int          `json:"subject"`
	Type         int          `json:"type"`
	DocCategory  Category     `json:"doc_category"`
	DocSubject   Subject      `json:"doc_subject"`
	DocType      DocumentType `json:"doc_type"`
	DocumentName string       `json:"document_name"`
	FileName     string       `json:"file_name"`
	Account      Uploader     `json:"account"`
	UploadedOn   time.Time    `json:"uploaded_on"`
	Year         *int         `json:"year,omitempty"`
	Extension    *string      `json:"extension,omitempty"`
}

type Uploader struct {
	ID       int    `json:"user_id"`
	Username string `json:"username"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type DocumentType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Subject struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Page is one page of a listing plus its metadata. len(Items) <= Size holds
// for every response the backend produces.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// Result is the discriminated outcome of a fetch. Fetch functions never
// propagate errors past their boundary: a failed call yields OK=false and a
// human-readable Err the UI can show directly.
type Result[T any] struct {
	OK   bool
	Data T
	Err  string
}

func success[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

func failure[T any](msg string) Result[T] {
	return Result[T]{OK: false, Err: msg}
}

// User is the account object persisted in the session store.
type User struct {
	ID       int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     int    `json:"role"`
	Verified bool   `json:"verified"`
}

// AuthResponse is the payload of a successful login or registration.
type AuthResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
