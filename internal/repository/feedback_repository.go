package repository

import (
    "context"
    "database/sql"
    "time"
)

// FeedbackRepo provides access to the feedbacks table.
type FeedbackRepo struct{ db *sql.DB }

// NewFeedbackRepo returns a new FeedbackRepo bound to the given database.
func NewFeedbackRepo(db *sql.DB) *FeedbackRepo { return &FeedbackRepo{db: db} }

// FeedbackRow is the wire shape of a feedback entry.
type FeedbackRow struct {
    FeedbackID uint64 `json:"feedback_id"`
    UserEmail  string `json:"user_email"`
    Category   string `json:"category"`
    Message    string `json:"message"`
    CreatedAt  string `json:"created_at"`
}

// Create inserts a feedback entry.  The created_at column defaults to the
// insertion timestamp.
func (r *FeedbackRepo) Create(ctx context.Context, email, category, message string) error {
    _, err := r.db.ExecContext(ctx,
        "INSERT INTO feedbacks (user_email, category, message) VALUES (?,?,?)",
        email, category, message)
    return err
}

// ListAll returns all feedback entries, newest first.
func (r *FeedbackRepo) ListAll(ctx context.Context) ([]FeedbackRow, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT feedback_id, user_email, category, message, created_at FROM feedbacks ORDER BY created_at DESC")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]FeedbackRow, 0)
    for rows.Next() {
        var f FeedbackRow
        var created time.Time
        if err := rows.Scan(&f.FeedbackID, &f.UserEmail, &f.Category, &f.Message, &created); err != nil {
            return nil, err
        }
        f.CreatedAt = created.UTC().Format(time.RFC3339)
        out = append(out, f)
    }
    return out, rows.Err()
}
