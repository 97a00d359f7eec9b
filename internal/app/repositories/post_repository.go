package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/pkg/apperrors"
	"github.com/dromero/aulasync/internal/pkg/logger"
)

// PostRepository handles class feed database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	sql, args, err := r.sb.Insert("posts").
		Columns("class_id", "author_id", "kind", "title", "body", "due_date", "attachment_file_id").
		Values(post.ClassID, post.AuthorID, post.Kind, post.Title, post.Body, post.DueDate, post.AttachmentFileID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create post SQL")
		return 0, fmt.Errorf("failed to build create post query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("classID", post.ClassID).Msg("Error executing create post query")
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return id, nil
}

// GetByID retrieves a post by ID, including its author
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT p.id, p.class_id, p.author_id, p.kind, p.title, p.body, p.due_date,
			p.attachment_file_id, p.created_at, p.updated_at,
			u.id, u.email, u.first_name, u.last_name
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`

	post := &models.Post{Author: &models.User{}}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.ClassID, &post.AuthorID, &post.Kind, &post.Title, &post.Body,
		&post.DueDate, &post.AttachmentFileID, &post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.Email, &post.Author.FirstName, &post.Author.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	return post, nil
}

// GetByClass retrieves a class feed with optional kind filtering, newest first
func (r *PostRepository) GetByClass(ctx context.Context, classID int64, kind *models.PostKind, page, pageSize int) ([]*models.Post, int64, error) {
	builder := r.sb.Select(
		"p.id", "p.class_id", "p.author_id", "p.kind", "p.title", "p.body", "p.due_date",
		"p.attachment_file_id", "p.created_at", "p.updated_at",
		"u.id", "u.email", "u.first_name", "u.last_name",
		"COUNT(*) OVER() AS total_count").
		From("posts p").
		Join("users u ON u.id = p.author_id").
		Where(squirrel.Eq{"p.class_id": classID}).
		OrderBy("p.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	if kind != nil {
		builder = builder.Where(squirrel.Eq{"p.kind": *kind})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get class feed query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing class feed: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	var total int64
	for rows.Next() {
		post := &models.Post{Author: &models.User{}}
		err := rows.Scan(
			&post.ID, &post.ClassID, &post.AuthorID, &post.Kind, &post.Title, &post.Body,
			&post.DueDate, &post.AttachmentFileID, &post.CreatedAt, &post.UpdatedAt,
			&post.Author.ID, &post.Author.Email, &post.Author.FirstName, &post.Author.LastName,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating post rows: %w", err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}

	return posts, total, nil
}

// GetTasksByClass retrieves all tasks of a class ordered by creation time.
// Used when exporting grades, so no pagination.
func (r *PostRepository) GetTasksByClass(ctx context.Context, classID int64) ([]*models.Post, error) {
	sql, args, err := r.sb.Select("id", "class_id", "author_id", "kind", "title", "body", "due_date",
		"attachment_file_id", "created_at", "updated_at").
		From("posts").
		Where(squirrel.Eq{"class_id": classID, "kind": models.PostTask}).
		OrderBy("created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get tasks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing class tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Post
	for rows.Next() {
		task := &models.Post{}
		err := rows.Scan(
			&task.ID, &task.ClassID, &task.AuthorID, &task.Kind, &task.Title, &task.Body,
			&task.DueDate, &task.AttachmentFileID, &task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	if tasks == nil {
		tasks = []*models.Post{}
	}

	return tasks, nil
}

// Update modifies a post's editable fields
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	sql, args, err := r.sb.Update("posts").
		Set("title", post.Title).
		Set("body", post.Body).
		Set("due_date", post.DueDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": post.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update post query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// Delete removes a post and, via cascade, its submissions
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("posts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete post query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing delete post query")
		return fmt.Errorf("error deleting post: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}
