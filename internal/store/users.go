package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sweetdelights/backend/internal/database"
	"github.com/sweetdelights/backend/internal/models"
)

type UserStore struct {
	db *database.DB
}

func NewUserStore(db *database.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user with the given password hash and returns it.
func (s *UserStore) Create(name, email, passwordHash, role string) (*models.User, error) {
	if name == "" || email == "" || passwordHash == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}
	if role == "" {
		role = models.RoleUser
	}

	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES (?, ?, ?, ?, ?)
	`, id, name, email, passwordHash, role)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return s.GetByID(id)
}

func (s *UserStore) GetByID(id string) (*models.User, error) {
	return s.getOne("id = ?", id)
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	return s.getOne("email = ?", email)
}

func (s *UserStore) getOne(where string, arg any) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(`
		SELECT id, name, email, password_hash, role, created_at
		FROM users WHERE `+where, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// isDuplicateKey detects mysql error 1062 without importing driver internals.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
