package repository

import (
	"database/sql"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/vichannnnn/holy-grail-sub001/models"
)

// ErrDuplicate is reported when a unique constraint (username, email) fails.
var ErrDuplicate = errDuplicate{}

type errDuplicate struct{}

func (errDuplicate) Error() string { return "already exists" }

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

func (r *UsersRepository) CreateUser(username, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = r.db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role, verified, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		RETURNING id, username, email, password_hash, role, verified, created_at`,
		username, email, string(hash), models.RoleUser,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.Verified, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepository) getUser(query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.Verified, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepository) GetUserByUsername(username string) (*models.User, error) {
	return r.getUser(`
		SELECT id, username, email, password_hash, role, verified, created_at
		FROM users WHERE username = $1`, username)
}

func (r *UsersRepository) GetUserByEmail(email string) (*models.User, error) {
	return r.getUser(`
		SELECT id, username, email, password_hash, role, verified, created_at
		FROM users WHERE email = $1`, email)
}

func (r *UsersRepository) GetUserByID(id int) (*models.User, error) {
	return r.getUser(`
		SELECT id, username, email, password_hash, role, verified, created_at
		FROM users WHERE id = $1`, id)
}

func (r *UsersRepository) UpdateEmail(userID int, email string) error {
	_, err := r.db.Exec(`
		UPDATE users SET email = $1, verified = FALSE WHERE id = $2`, email, userID)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *UsersRepository) UpdatePassword(userID int, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, string(hash), userID)
	return err
}

// SetVerificationToken stores a fresh email verification token for the user.
func (r *UsersRepository) SetVerificationToken(userID int, token string) error {
	_, err := r.db.Exec(`
		UPDATE users SET verification_token = $1 WHERE id = $2`, token, userID)
	return err
}

// SetResetToken stores a password reset token keyed by the user's email.
// ok is false when no account uses that email.
func (r *UsersRepository) SetResetToken(email, token string) (ok bool, err error) {
	res, err := r.db.Exec(`
		UPDATE users SET reset_token = $1 WHERE email = $2`, token, email)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
