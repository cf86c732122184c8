package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/ticket-storefront/internal/utils"
)

// RoleCustomer is the only role a storefront account carries.
const RoleCustomer = "CUSTOMER"

// User mirrors the 'users' table.
type User struct {
	ID           uint64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

const userCols = "id,email,name,password_hash,role,is_active,created_at,updated_at"

// Create hashes password and inserts a customer account, returning its ID.
func (r *UserRepo) Create(ctx context.Context, email, name, password string, cost int) (uint64, error) {
	email = normalizeEmail(email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, name, password_hash, role) VALUES (?,?,?,?)",
		email, strings.TrimSpace(name), hash, RoleCustomer)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", normalizeEmail(email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) scanOne(ctx context.Context, q string, arg any) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx, q, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
