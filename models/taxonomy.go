package models

// CategoryType is a top-level educational level grouping (e.g. GCE 'O' Levels).
type CategoryType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DocumentType classifies a note (e.g. Exam Paper, Summary Notes).
type DocumentType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SubjectType is a course/topic scoped to exactly one category.
type SubjectType struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Category CategoryType `json:"category"`
}
