package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
)

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, email, role, full_name, phone, college_id)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at`
	role := user.Role
	if role == "" {
		role = model.RoleStudent
	}
	out := *user
	out.Role = role
	err := r.storage.pool.QueryRow(ctx, query,
		user.Login, user.PasswordHash, user.Email, role, user.FullName, user.Phone, user.CollegeID,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

const userColumns = `id, login, password_hash, email, email_verified, role, full_name, phone, college_id, wallet_balance, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Email, &u.EmailVerified, &u.Role,
		&u.FullName, &u.Phone, &u.CollegeID, &u.WalletBalance, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE login=$1`, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, email string) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE users SET email_verified=TRUE WHERE email=$1`, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
