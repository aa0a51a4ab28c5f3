package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/openshelf/library-service/internal/errs"
	"github.com/openshelf/library-service/internal/model"
	"github.com/openshelf/library-service/pkg/auth"
)

func (r *repository) CreateUser(ctx context.Context, req model.UserCreateRequest, passwordHash string) (model.User, error) {
	role := req.Role
	if role == "" {
		role = auth.RoleMember
	}

	query, args, err := qb.Insert(usersTableName).
		Columns("username", "password", "email", "full_name", "role").
		Values(req.Username, passwordHash, req.Email, req.FullName, role).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.User{}, errs.ErrUserExists
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	const q = `
	select id, username, password, email, full_name, role, registration_date
	from users where username = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) Profile(ctx context.Context, userID int) (model.UserProfile, error) {
	const userQ = `
	select id, username, password, email, full_name, role, registration_date
	from users where id = $1`

	var profile model.UserProfile
	if err := r.db.GetContext(ctx, &profile.User, userQ, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserProfile{}, errs.ErrUserNotFound
		}
		return model.UserProfile{}, err
	}

	const statsQ = `
	select count(id) as total_borrowed,
	       count(id) filter (where status = 'BORROWED') as currently_borrowed,
	       count(id) filter (where status = 'BORROWED' and due_date < current_date) as overdue
	from loans
	where user_id = $1`

	if err := r.db.GetContext(ctx, &profile.Stats, statsQ, userID); err != nil {
		return model.UserProfile{}, err
	}
	return profile, nil
}

func (r *repository) ListUsers(ctx context.Context) ([]model.UserStats, error) {
	const q = `
	select u.id, u.username, u.email, u.full_name, u.role, u.registration_date,
	       count(l.id) as total_borrowed,
	       count(l.id) filter (where l.status = 'BORROWED') as currently_borrowed,
	       count(l.id) filter (where l.status = 'BORROWED' and l.due_date < current_date) as overdue
	from users u
	left join loans l on l.user_id = u.id
	group by u.id
	order by u.username`

	var users []model.UserStats
	if err := r.db.SelectContext(ctx, &users, q); err != nil {
		return nil, err
	}
	return users, nil
}
