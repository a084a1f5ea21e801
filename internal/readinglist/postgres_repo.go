package readinglist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const itemColumns = `book_id, title, authors, description, publisher, published_date, cover_url, finished, finished_date`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	err := row.Scan(
		&it.BookID, &it.Title, &it.Authors, &it.Description, &it.Publisher,
		&it.PublishedDate, &it.CoverURL, &it.Finished, &it.FinishedDate,
	)
	return it, err
}

func (r *PostgresRepo) List(ctx context.Context) ([]Item, error) {
	const listSQL = `
		SELECT ` + itemColumns + `
		FROM reading_list
		ORDER BY created_at ASC, book_id ASC
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, listSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepo) Insert(ctx context.Context, item Item) error {
	const insertSQL = `
		INSERT INTO reading_list (book_id, title, authors, description, publisher, published_date, cover_url, finished, finished_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NULL, NOW())
		ON CONFLICT (book_id) DO NOTHING
	`
	authors := item.Authors
	if authors == nil {
		authors = []string{}
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	commandTag, err := r.db.Exec(timeoutCtx, insertSQL,
		item.BookID, item.Title, authors, item.Description, item.Publisher, item.PublishedDate, item.CoverURL,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, bookID string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, `DELETE FROM reading_list WHERE book_id = $1`, bookID)
	return err
}

func (r *PostgresRepo) MarkFinished(ctx context.Context, bookID string, at time.Time) (Item, error) {
	const updateSQL = `
		UPDATE reading_list
		SET finished = TRUE, finished_date = $2
		WHERE book_id = $1
		RETURNING ` + itemColumns
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	it, err := scanItem(r.db.QueryRow(timeoutCtx, updateSQL, bookID, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return it, nil
}
