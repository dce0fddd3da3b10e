package repository

import (
	"database/sql"

	"github.com/vichannnnn/holy-grail-sub001/models"
)

type FavouritesRepository struct {
	db *sql.DB
}

func NewFavouritesRepository(db *sql.DB) *FavouritesRepository {
	return &FavouritesRepository{db: db}
}

// Add is idempotent: favouriting an already-favourited note is a no-op.
func (r *FavouritesRepository) Add(userID, noteID int) error {
	_, err := r.db.Exec(`
		INSERT INTO favourites (user_id, note_id, added_on)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, note_id) DO NOTHING`, userID, noteID)
	return err
}

func (r *FavouritesRepository) Remove(userID, noteID int) error {
	_, err := r.db.Exec(`
		DELETE FROM favourites WHERE user_id = $1 AND note_id = $2`, userID, noteID)
	return err
}

// ListByUser returns one page of the user's favourited notes, most recently
// favourited first. Only approved notes are listed; a note that got
// unapproved or deleted simply drops out of the results.
func (r *FavouritesRepository) ListByUser(userID, page, size int) ([]*models.Note, int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*)
		FROM favourites f
		JOIN notes n ON f.note_id = n.id
		WHERE f.user_id = $1 AND n.approved = TRUE`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(`
		SELECT `+noteSelectColumns+noteSelectJoins+`
		JOIN favourites f ON f.note_id = n.id
		WHERE f.user_id = $1 AND n.approved = TRUE
		ORDER BY f.added_on DESC
		LIMIT $2 OFFSET $3`, userID, size, (page-1)*size)
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

func (r *FavouritesRepository) IsFavourited(userID, noteID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM favourites WHERE user_id = $1 AND note_id = $2
		)`, userID, noteID).Scan(&exists)
	return exists, err
}
