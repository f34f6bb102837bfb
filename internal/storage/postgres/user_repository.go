package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/gigmarket/internal/domain/model"
)

const userColumns = `id, email, name, password_hash, role, rating, total_projects, created_at`

type userRepository struct {
	storage *Storage
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (id, email, name, password_hash, role) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	if user.ID == "" {
		user.ID = newID()
	}
	err := r.storage.pool.QueryRow(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash, user.Role.String()).Scan(&user.CreatedAt)
	if err != nil {
		return nil, mapError(err, "user", user.Email)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	user, err := scanUser(r.storage.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapError(err, "user", email)
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	user, err := scanUser(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "user", id)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u    model.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.Rating, &u.TotalProjects, &u.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := model.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	u.Role = parsed
	return &u, nil
}
