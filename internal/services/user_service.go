package services

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/potionworks/potion-api-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(name, password string) (models.User, error)
	Authenticate(name, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// sanitize trims surrounding whitespace and strips HTML-significant
// characters from client input before validation.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '&', '"', '\'':
			return -1
		}
		return r
	}, s)
}

// validateCredentials checks the registration constraints and reports
// every violated field at once.
func validateCredentials(name, password string) models.ValidationErrors {
	var errs models.ValidationErrors

	if name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "username is required"})
	} else if n := utf8.RuneCountInString(name); n < 3 || n > 30 {
		errs = append(errs, models.FieldError{Field: "name", Message: "must be between 3 and 30 characters"})
	}

	if password == "" {
		errs = append(errs, models.FieldError{Field: "password", Message: "password is required"})
	} else if utf8.RuneCountInString(password) < 6 {
		errs = append(errs, models.FieldError{Field: "password", Message: "minimum 6 characters"})
	}

	return errs
}

// Register validates and creates a new user, hashing their password.
func (s *UserService) Register(name, password string) (models.User, error) {
	name = sanitize(name)
	password = sanitize(password)

	if errs := validateCredentials(name, password); len(errs) > 0 {
		return models.User{}, errs
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		PasswordHash: string(hashedPassword),
	}

	_, err = s.db.Exec("INSERT INTO users(id, name, password_hash) VALUES(?, ?, ?)",
		user.ID, user.Name, user.PasswordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.User{}, models.ErrDuplicateUser
		}
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials. A missing user and a wrong
// password are indistinguishable to the caller.
func (s *UserService) Authenticate(name, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, password_hash, created_at FROM users WHERE name = ?", name)
	err := row.Scan(&user.ID, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("authentication failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("authentication failed")
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
