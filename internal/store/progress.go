package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// progressRepo implements ProgressRepo on the completed_items and
// last_read tables, scoped to one learner.
type progressRepo struct {
	db     *sql.DB
	userID string
}

func (r *progressRepo) MarkComplete(ctx context.Context, trackID, itemID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO completed_items (user_id, item_id, track_id, completed_at) VALUES (?, ?, ?, ?)`,
		r.userID, itemID, trackID, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("mark complete %q: %w", itemID, err)
	}
	return nil
}

func (r *progressRepo) Completed(ctx context.Context) ([]CompletedItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT track_id, item_id, completed_at FROM completed_items
		 WHERE user_id = ? ORDER BY completed_at, item_id`,
		r.userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query completed items: %w", err)
	}
	defer rows.Close()

	var out []CompletedItem
	for rows.Next() {
		var ci CompletedItem
		var ts int64
		if err := rows.Scan(&ci.TrackID, &ci.ItemID, &ts); err != nil {
			return nil, fmt.Errorf("scan completed item: %w", err)
		}
		ci.CompletedAt = time.Unix(ts, 0).UTC()
		out = append(out, ci)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed items: %w", err)
	}
	return out, nil
}

func (r *progressRepo) SetLastRead(ctx context.Context, lr LastRead) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO last_read (user_id, track_id, item_id, track_name, title, read_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			track_id = excluded.track_id,
			item_id = excluded.item_id,
			track_name = excluded.track_name,
			title = excluded.title,
			read_at = excluded.read_at`,
		r.userID, lr.TrackID, lr.ItemID, lr.TrackName, lr.Title, lr.ReadAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("set last read: %w", err)
	}
	return nil
}

func (r *progressRepo) LastRead(ctx context.Context) (*LastRead, error) {
	var lr LastRead
	var ts int64
	err := r.db.QueryRowContext(ctx,
		`SELECT track_id, item_id, track_name, title, read_at FROM last_read WHERE user_id = ?`,
		r.userID,
	).Scan(&lr.TrackID, &lr.ItemID, &lr.TrackName, &lr.Title, &ts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query last read: %w", err)
	}
	lr.ReadAt = time.Unix(ts, 0).UTC()
	return &lr, nil
}

func (r *progressRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM completed_items WHERE user_id = ?`, r.userID); err != nil {
		return fmt.Errorf("reset completed items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM last_read WHERE user_id = ?`, r.userID); err != nil {
		return fmt.Errorf("reset last read: %w", err)
	}
	return tx.Commit()
}
