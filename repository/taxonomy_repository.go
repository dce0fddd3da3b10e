package repository

import (
	"database/sql"

	"github.com/vichannnnn/holy-grail-sub001/models"
)

// TaxonomyRepository serves the read-only reference enumerations used to
// populate the library filter dropdowns.
type TaxonomyRepository struct {
	db *sql.DB
}

func NewTaxonomyRepository(db *sql.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

func (r *TaxonomyRepository) Categories() ([]models.CategoryType, error) {
	rows, err := r.db.Query(`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.CategoryType{}
	for rows.Next() {
		var c models.CategoryType
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *TaxonomyRepository) DocumentTypes() ([]models.DocumentType, error) {
	rows, err := r.db.Query(`SELECT id, name FROM document_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docTypes := []models.DocumentType{}
	for rows.Next() {
		var d models.DocumentType
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		docTypes = append(docTypes, d)
	}
	return docTypes, rows.Err()
}

// Subjects returns all subjects, or only those under categoryID when non-nil.
func (r *TaxonomyRepository) Subjects(categoryID *int) ([]models.SubjectType, error) {
	query := `
		SELECT s.id, s.name, c.id, c.name
		FROM subjects s
		JOIN categories c ON s.category_id = c.id`
	args := []interface{}{}
	if categoryID != nil {
		query += ` WHERE s.category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY s.name`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []models.SubjectType{}
	for rows.Next() {
		var s models.SubjectType
		if err := rows.Scan(&s.ID, &s.Name, &s.Category.ID, &s.Category.Name); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}
