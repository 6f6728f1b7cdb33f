package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shashankb2004/edublog/internal/domain"
	internal_errors "github.com/shashankb2004/edublog/internal/errors"
)

const blogColumns = `b.id, b.title, b.category, b.content, b.excerpt, b.image,
	b.author_id, u.username, b.created_at, b.updated_at`

// =========================================================================
// Public Methods (satisfy the service.BlogStorage interface)
// =========================================================================

// Blogs returns all blogs, newest first, with author details joined in.
func (s *Storage) Blogs() ([]domain.Blog, error) {
	return s.blogs(s.db, "", nil)
}

// BlogsByAuthor returns one author's blogs, newest first.
func (s *Storage) BlogsByAuthor(author domain.UserId) ([]domain.Blog, error) {
	return s.blogs(s.db, "WHERE b.author_id = $1", []interface{}{author})
}

func (s *Storage) Blog(id domain.BlogId) (domain.Blog, error) {
	return s.blog(s.db, id)
}

func (s *Storage) CreateBlog(blog domain.Blog) (domain.Blog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var saved domain.Blog
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		saved, err = s.createBlog(tx, blog)
		return err
	})
	return saved, err
}

func (s *Storage) UpdateBlog(blog domain.Blog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updateBlog(tx, blog)
	})
}

func (s *Storage) DeleteBlog(id domain.BlogId) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteBlog(tx, id)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) blogs(q Querier, where string, args []interface{}) ([]domain.Blog, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		%s
		ORDER BY b.created_at DESC`, blogColumns, where)

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer rows.Close()

	blogs := []domain.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blogs: %w", err)
	}
	return blogs, nil
}

func (s *Storage) blog(q Querier, id domain.BlogId) (domain.Blog, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.id = $1`, blogColumns)

	var blog domain.Blog
	err := q.QueryRow(query, id).Scan(
		&blog.Id, &blog.Title, &blog.Category, &blog.Content, &blog.Excerpt, &blog.Image,
		&blog.Author.Id, &blog.Author.Username, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Blog{}, &internal_errors.ErrorWithStatusCode{Message: "Blog not found", StatusCode: http.StatusNotFound}
		}
		return domain.Blog{}, fmt.Errorf("failed to query blog: %w", err)
	}
	return blog, nil
}

func (s *Storage) createBlog(tx *sql.Tx, blog domain.Blog) (domain.Blog, error) {
	err := tx.QueryRow(`
		INSERT INTO blogs(title, category, content, excerpt, image, author_id)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		blog.Title, blog.Category, blog.Content, blog.Excerpt, blog.Image, blog.Author.Id).
		Scan(&blog.Id, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		return domain.Blog{}, fmt.Errorf("failed to insert blog: %w", err)
	}

	// Fill in the author username for the response
	err = tx.QueryRow("SELECT username FROM users WHERE id = $1", blog.Author.Id).Scan(&blog.Author.Username)
	if err != nil {
		return domain.Blog{}, fmt.Errorf("failed to resolve blog author: %w", err)
	}
	return blog, nil
}

func (s *Storage) updateBlog(q Querier, blog domain.Blog) error {
	result, err := q.Exec(`
		UPDATE blogs
		SET title = $1, category = $2, content = $3, excerpt = $4, image = $5, updated_at = $6
		WHERE id = $7`,
		blog.Title, blog.Category, blog.Content, blog.Excerpt, blog.Image, blog.UpdatedAt, blog.Id)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Blog not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

func (s *Storage) deleteBlog(q Querier, id domain.BlogId) error {
	result, err := q.Exec("DELETE FROM blogs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Blog not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

func scanBlog(rows *sql.Rows) (domain.Blog, error) {
	var blog domain.Blog
	err := rows.Scan(
		&blog.Id, &blog.Title, &blog.Category, &blog.Content, &blog.Excerpt, &blog.Image,
		&blog.Author.Id, &blog.Author.Username, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		return domain.Blog{}, fmt.Errorf("failed to scan blog: %w", err)
	}
	return blog, nil
}
