package events

// Moderation events delivered to uploaders over the realtime channel.
// These structs are intentionally small and versionable; changes should be
// additive.

// NoteApproved is emitted when a moderator approves a pending note.
type NoteApproved struct {
	Type         string `json:"type"`
	NoteID       int    `json:"noteId"`
	DocumentName string `json:"documentName"`
}

// NoteDeleted is emitted when a note is removed by a moderator.
type NoteDeleted struct {
	Type         string `json:"type"`
	NoteID       int    `json:"noteId"`
	DocumentName string `json:"documentName"`
}

const (
	TypeNoteApproved = "note.approved"
	TypeNoteDeleted  = "note.deleted"
)
