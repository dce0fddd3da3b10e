package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/vichannnnn/holy-grail-sub001/models"
)

type NotesRepository struct {
	db *sql.DB
}

func NewNotesRepository(db *sql.DB) *NotesRepository {
	return &NotesRepository{db: db}
}

const noteSelectColumns = `
	n.id, n.category_id, n.subject_id, n.document_type_id,
	c.id, c.name,
	s.id, s.name, c.id, c.name,
	d.id, d.name,
	n.document_name, n.file_name,
	u.id, u.username,
	n.uploaded_on, n.year, n.extension, n.approved`

const noteSelectJoins = `
	FROM notes n
	JOIN categories c ON n.category_id = c.id
	JOIN subjects s ON n.subject_id = s.id
	JOIN document_types d ON n.document_type_id = d.id
	JOIN users u ON n.user_id = u.id`

func scanNote(row interface{ Scan(...interface{}) error }) (*models.Note, error) {
	var note models.Note
	var year sql.NullInt64
	var ext sql.NullString
	err := row.Scan(
		&note.ID, &note.Category, &note.Subject, &note.Type,
		&note.DocCategory.ID, &note.DocCategory.Name,
		&note.DocSubject.ID, &note.DocSubject.Name,
		&note.DocSubject.Category.ID, &note.DocSubject.Category.Name,
		&note.DocType.ID, &note.DocType.Name,
		&note.DocumentName, &note.FileName,
		&note.Account.ID, &note.Account.Username,
		&note.UploadedOn, &year, &ext, &note.Approved,
	)
	if err != nil {
		return nil, err
	}
	if year.Valid {
		y := int(year.Int64)
		note.Year = &y
	}
	if ext.Valid {
		e := ext.String
		note.Extension = &e
	}
	return &note, nil
}

// CreateNote inserts a new pending note and returns it with display objects.
func (r *NotesRepository) CreateNote(userID, categoryID, subjectID, docTypeID int, documentName, fileName string, year *int, extension *string) (*models.Note, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO notes (user_id, category_id, subject_id, document_type_id,
		                   document_name, file_name, year, extension, approved, uploaded_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, NOW())
		RETURNING id`,
		userID, categoryID, subjectID, docTypeID, documentName, fileName, year, extension,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetNoteByID(id)
}

func (r *NotesRepository) GetNoteByID(id int) (*models.Note, error) {
	note, err := scanNote(r.db.QueryRow(
		`SELECT `+noteSelectColumns+noteSelectJoins+` WHERE n.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// SearchNotes returns one page of notes matching the filters, plus the total
// match count. Filters with zero values are skipped entirely; in particular
// Year == 0 never reaches SQL (legacy "unset" sentinel kept from the old
// clients, which strip it before the request is sent).
func (r *NotesRepository) SearchNotes(approved bool, f models.NoteFilters) ([]*models.Note, int, error) {
	where := []string{"n.approved = $1"}
	args := []interface{}{approved}

	addFilter := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if f.Category != "" {
		addFilter("c.name = $%d", f.Category)
	}
	if f.Subject != "" {
		addFilter("s.name = $%d", f.Subject)
	}
	if f.DocType != "" {
		addFilter("d.name = $%d", f.DocType)
	}
	if f.Keyword != "" {
		addFilter("n.document_name ILIKE $%d", "%"+f.Keyword+"%")
	}
	if f.Year > 0 {
		addFilter("n.year = $%d", f.Year)
	}

	whereClause := " WHERE " + strings.Join(where, " AND ")

	order := " ORDER BY n.uploaded_on DESC"
	if strings.EqualFold(f.SortedByUploadDate, "asc") {
		order = " ORDER BY n.uploaded_on ASC"
	}

	var total int
	if err := r.db.QueryRow(
		`SELECT COUNT(*)`+noteSelectJoins+whereClause, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	limitArgs := append(args, f.Size, (f.Page-1)*f.Size)
	query := `SELECT ` + noteSelectColumns + noteSelectJoins + whereClause + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := r.db.Query(query, limitArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, 0, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// ApproveNote flips a pending note to approved and returns the uploader id
// so the caller can notify them. ok is false when the note does not exist.
func (r *NotesRepository) ApproveNote(id int) (uploaderID int, ok bool, err error) {
	err = r.db.QueryRow(`
		UPDATE notes SET approved = TRUE
		WHERE id = $1
		RETURNING user_id`, id).Scan(&uploaderID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uploaderID, true, nil
}

// DeleteNote removes the row and returns the stored file name so the caller
// can delete the underlying object.
func (r *NotesRepository) DeleteNote(id int) (fileName string, ok bool, err error) {
	err = r.db.QueryRow(`
		DELETE FROM notes WHERE id = $1
		RETURNING file_name`, id).Scan(&fileName)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return fileName, true, nil
}
