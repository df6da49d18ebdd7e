package content

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"

	"learnhub/internal/domain"
	models "learnhub/internal/domain/models/content"
	"learnhub/internal/domain/repositories"
	contentRepo "learnhub/internal/domain/repositories/content"
	"learnhub/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contentColumns = `id, title, institute, subject, chapter, topic, type, url, body,
	position, created_by, created_at, updated_at, deleted_at`

// PostgresContentRepository implements the ContentRepository interface
type PostgresContentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewContentRepository creates a new content repository
func NewContentRepository(config *postgres.RepositoryConfig) contentRepo.ContentRepository {
	return &PostgresContentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new item
func (r *PostgresContentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, institute, subject, chapter, topic, type, url, body,
			position, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		item.Title,
		item.Institute,
		item.Subject,
		item.Chapter,
		item.Topic,
		item.Type,
		item.URL,
		item.Body,
		item.Position,
		item.CreatedBy,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		if postgres.IsPgInvalidInputError(err) {
			return fmt.Errorf("create content: %w", domain.ErrValidation)
		}
		return fmt.Errorf("create content: %w", err)
	}

	return nil
}

// GetByID retrieves a live item by ID
func (r *PostgresContentRepository) GetByID(ctx context.Context, id string) (*models.ContentItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, contentColumns, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	item, err := scanContent(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidInputError(err) {
			return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get content: %w", err)
	}

	return item, nil
}

// List returns every live item in tree order: each grouping level ordered by
// the creation time of its first item, then items by position within a topic
func (r *PostgresContentRepository) List(ctx context.Context) ([]models.ContentItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE deleted_at IS NULL
		ORDER BY
			MIN(created_at) OVER (PARTITION BY institute),
			institute,
			MIN(created_at) OVER (PARTITION BY institute, subject),
			subject,
			MIN(created_at) OVER (PARTITION BY institute, subject, chapter),
			chapter,
			MIN(created_at) OVER (PARTITION BY institute, subject, chapter, topic),
			topic,
			position,
			created_at,
			id
	`, contentColumns, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}

	items, err := collectContents(rows)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("contents listed", "count", len(items))
	return items, nil
}

// ListByTopic returns the live items of one topic ordered by position
func (r *PostgresContentRepository) ListByTopic(ctx context.Context, path models.TopicPath) ([]models.ContentItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE institute = $1 AND subject = $2 AND chapter = $3 AND topic = $4
			AND deleted_at IS NULL
		ORDER BY position, created_at, id
	`, contentColumns, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, path.Institute, path.Subject, path.Chapter, path.Topic)
	if err != nil {
		return nil, fmt.Errorf("list topic contents: %w", err)
	}

	return collectContents(rows)
}

// LockTopic takes a transaction-scoped advisory lock keyed by table and topic path
func (r *PostgresContentRepository) LockTopic(ctx context.Context, path models.TopicPath) error {
	if !repositories.InTx(ctx) {
		return fmt.Errorf("lock topic %q: not in a transaction", path.Topic)
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", topicLockKey(r.tables.Contents, path)); err != nil {
		return fmt.Errorf("lock topic: %w", err)
	}

	return nil
}

func topicLockKey(table string, path models.TopicPath) int64 {
	h := fnv.New64a()
	for _, part := range []string{table, path.Institute, path.Subject, path.Chapter, path.Topic} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	return int64(h.Sum64())
}

// NextPosition returns max(position)+1 for the topic, or 0 when it is empty
func (r *PostgresContentRepository) NextPosition(ctx context.Context, path models.TopicPath) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(position) + 1, 0)
		FROM %s
		WHERE institute = $1 AND subject = $2 AND chapter = $3 AND topic = $4
			AND deleted_at IS NULL
	`, r.tables.Contents)

	var next int
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, path.Institute, path.Subject, path.Chapter, path.Topic).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next position: %w", err)
	}

	return next, nil
}

// Update writes every mutable field of the item
func (r *PostgresContentRepository) Update(ctx context.Context, item *models.ContentItem) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, institute = $2, subject = $3, chapter = $4, topic = $5,
			type = $6, url = $7, body = $8, position = $9, updated_at = $10
		WHERE id = $11 AND deleted_at IS NULL
	`, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		item.Title,
		item.Institute,
		item.Subject,
		item.Chapter,
		item.Topic,
		item.Type,
		item.URL,
		item.Body,
		item.Position,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("content %s: %w", item.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdatePosition sets the order of one item inside its topic
func (r *PostgresContentRepository) UpdatePosition(ctx context.Context, id string, position int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET position = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`, r.tables.Contents)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, position, id)
	if err != nil {
		return fmt.Errorf("update content position: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes an item by setting deleted_at and returns it
func (r *PostgresContentRepository) Delete(ctx context.Context, id string) (*models.ContentItem, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING %s
	`, r.tables.Contents, contentColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	item, err := scanContent(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidInputError(err) {
			return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete content: %w", err)
	}

	return item, nil
}

// scanContent reads one row selected with contentColumns
func scanContent(row pgx.Row) (*models.ContentItem, error) {
	var item models.ContentItem
	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Institute,
		&item.Subject,
		&item.Chapter,
		&item.Topic,
		&item.Type,
		&item.URL,
		&item.Body,
		&item.Position,
		&item.CreatedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// collectContents drains rows, returning an empty slice instead of nil
func collectContents(rows pgx.Rows) ([]models.ContentItem, error) {
	defer rows.Close()

	items := []models.ContentItem{}
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contents: %w", err)
	}

	return items, nil
}
