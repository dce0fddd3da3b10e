package initializers

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"github.com/vichannnnn/holy-grail-sub001/models"
)

// InitDefaults runs once on startup and ensures the baseline taxonomy and,
// when configured, the bootstrap admin account exist.
func InitDefaults(db *sql.DB, cfg Config) error {
	oLevelID, err := ensureCategory(db, "GCE 'O' Levels")
	if err != nil {
		return err
	}
	aLevelID, err := ensureCategory(db, "GCE 'A' Levels")
	if err != nil {
		return err
	}
	if _, err := ensureCategory(db, "International Baccalaureate"); err != nil {
		return err
	}

	for _, name := range []string{"Notes", "Practice Papers", "Extra Resources"} {
		if err := ensureDocumentType(db, name); err != nil {
			return err
		}
	}

	// A couple of starter subjects so a fresh install has working dropdowns.
	for _, s := range []struct {
		name       string
		categoryID int
	}{
		{"Mathematics", oLevelID},
		{"English", oLevelID},
		{"H2 Mathematics", aLevelID},
	} {
		if err := ensureSubject(db, s.name, s.categoryID); err != nil {
			return err
		}
	}

	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if err := ensureAdmin(db, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	}
	return nil
}

func ensureCategory(db *sql.DB, name string) (int, error) {
	var id int
	err := db.QueryRow(`SELECT id FROM categories WHERE name = $1`, name).Scan(&id)
	if err == sql.ErrNoRows {
		err = db.QueryRow(`INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func ensureDocumentType(db *sql.DB, name string) error {
	var id int
	err := db.QueryRow(`SELECT id FROM document_types WHERE name = $1`, name).Scan(&id)
	if err == sql.ErrNoRows {
		err = db.QueryRow(`INSERT INTO document_types (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	}
	return err
}

func ensureSubject(db *sql.DB, name string, categoryID int) error {
	var id int
	err := db.QueryRow(`
		SELECT id FROM subjects WHERE name = $1 AND category_id = $2`,
		name, categoryID).Scan(&id)
	if err == sql.ErrNoRows {
		err = db.QueryRow(`
			INSERT INTO subjects (name, category_id) VALUES ($1, $2) RETURNING id`,
			name, categoryID).Scan(&id)
	}
	return err
}

func ensureAdmin(db *sql.DB, username, email, password string) error {
	var id int
	err := db.QueryRow(`SELECT id FROM users WHERE username = $1`, username).Scan(&id)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash, role, verified, created_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW())`,
		username, email, string(hash), models.RoleAdmin)
	return err
}
