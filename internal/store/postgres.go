package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/avelichko/postbook/internal/models"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// postRow flattens the posts/users/groups join for sqlx scanning.
type postRow struct {
	models.Post
	GroupID          sql.NullInt64  `db:"group_id"`
	AuthorUsername   string         `db:"author_username"`
	AuthorFirstName  string         `db:"author_first_name"`
	AuthorLastName   string         `db:"author_last_name"`
	GroupTitle       sql.NullString `db:"group_title"`
	GroupSlug        sql.NullString `db:"group_slug"`
	GroupDescription sql.NullString `db:"group_description"`
}

func (r *postRow) toPost() models.Post {
	p := r.Post
	p.Author = models.User{
		ID:        p.AuthorID,
		Username:  r.AuthorUsername,
		FirstName: r.AuthorFirstName,
		LastName:  r.AuthorLastName,
	}
	if r.GroupID.Valid {
		id := r.GroupID.Int64
		p.GroupID = &id
		p.Group = &models.Group{
			ID:          id,
			Title:       r.GroupTitle.String,
			Slug:        r.GroupSlug.String,
			Description: r.GroupDescription.String,
		}
	}
	return p
}

const postSelect = `
	SELECT p.id, p.text, p.author_id, p.group_id, p.created_at,
	       u.username AS author_username,
	       u.first_name AS author_first_name,
	       u.last_name AS author_last_name,
	       g.title AS group_title,
	       g.slug AS group_slug,
	       g.description AS group_description
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id
`

func (s *PostgresStore) Posts(ctx context.Context, f PostFilter) ([]models.Post, error) {
	query := postSelect
	args := []any{}

	switch {
	case f.AuthorID != nil:
		query += ` WHERE p.author_id = $1`
		args = append(args, *f.AuthorID)
	case f.GroupID != nil:
		query += ` WHERE p.group_id = $1`
		args = append(args, *f.GroupID)
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	var rows []postRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("store: select posts: %w", err)
	}

	posts := make([]models.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toPost())
	}
	return posts, nil
}

func (s *PostgresStore) PostByID(ctx context.Context, id int64) (*models.Post, error) {
	var row postRow
	err := s.db.GetContext(ctx, &row, postSelect+` WHERE p.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get post %d: %w", id, err)
	}
	post := row.toPost()
	return &post, nil
}

func (s *PostgresStore) CreatePost(ctx context.Context, p *models.Post) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO posts (text, author_id, group_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, p.Text, p.AuthorID, p.GroupID).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert post: %w", err)
	}
	return nil
}

// UpdatePost writes text and group only; author and created_at stay as
// inserted.
func (s *PostgresStore) UpdatePost(ctx context.Context, p *models.Post) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET text = $1, group_id = $2 WHERE id = $3
	`, p.Text, p.GroupID, p.ID)
	if err != nil {
		return fmt.Errorf("store: update post %d: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Groups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.SelectContext(ctx, &groups, `
		SELECT id, title, slug, description FROM groups ORDER BY title
	`)
	if err != nil {
		return nil, fmt.Errorf("store: select groups: %w", err)
	}
	return groups, nil
}

func (s *PostgresStore) GroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var g models.Group
	err := s.db.GetContext(ctx, &g, `
		SELECT id, title, slug, description FROM groups WHERE slug = $1
	`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get group %q: %w", slug, err)
	}
	return &g, nil
}

func (s *PostgresStore) GroupByID(ctx context.Context, id int64) (*models.Group, error) {
	var g models.Group
	err := s.db.GetContext(ctx, &g, `
		SELECT id, title, slug, description FROM groups WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get group %d: %w", id, err)
	}
	return &g, nil
}

func (s *PostgresStore) CreateGroup(ctx context.Context, g *models.Group) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, g.Title, g.Slug, g.Description).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("store: insert group: %w", err)
	}
	return nil
}

func (s *PostgresStore) UserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, username, first_name, last_name, email, password_hash, created_at
		FROM users WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get user %d: %w", id, err)
	}
	return &u, nil
}

func (s *PostgresStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, username, first_name, last_name, email, password_hash, created_at
		FROM users WHERE username = $1
	`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get user %q: %w", username, err)
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO users (username, first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, u.Username, u.FirstName, u.LastName, u.Email, u.Password).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return fmt.Errorf("store: insert user: %w", err)
	}
	return nil
}
