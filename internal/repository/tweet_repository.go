package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/twitter-api/internal/database"
	"github.com/iliyamo/twitter-api/internal/model"
)

const tweetColumns = "tweet_id, user_id, text, created_time"

// TweetRepo runs queries against the tweets table.
type TweetRepo struct {
	db database.DBTX
}

func NewTweetRepo(db database.DBTX) *TweetRepo { return &TweetRepo{db: db} }

// WithDB returns a copy of the repo bound to db, typically a transaction.
func (r *TweetRepo) WithDB(db database.DBTX) *TweetRepo { return &TweetRepo{db: db} }

// Create inserts t.  The author must exist; a dangling user_id is rejected
// by the foreign key.
func (r *TweetRepo) Create(ctx context.Context, t *model.Tweet) error {
	q := r.db.Rebind(`INSERT INTO tweets (` + tweetColumns + `) VALUES (?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q, t.TweetID, t.UserID, t.Text, t.CreatedTime)
	return err
}

func (r *TweetRepo) GetByID(ctx context.Context, id string) (*model.Tweet, error) {
	var t model.Tweet
	q := r.db.Rebind(`SELECT ` + tweetColumns + ` FROM tweets WHERE tweet_id = ?`)
	if err := r.db.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns tweets from every user, oldest first.
func (r *TweetRepo) List(ctx context.Context, page model.Page) ([]model.Tweet, error) {
	tweets := []model.Tweet{}
	if page.Limit == 0 {
		return tweets, nil
	}
	q := r.db.Rebind(`SELECT ` + tweetColumns + ` FROM tweets ORDER BY created_time, tweet_id LIMIT ? OFFSET ?`)
	if err := r.db.SelectContext(ctx, &tweets, q, page.Limit, page.Skip); err != nil {
		return nil, err
	}
	return tweets, nil
}

// ListByUser returns the tweets written by userID, oldest first.
func (r *TweetRepo) ListByUser(ctx context.Context, userID string, page model.Page) ([]model.Tweet, error) {
	tweets := []model.Tweet{}
	if page.Limit == 0 {
		return tweets, nil
	}
	q := r.db.Rebind(`SELECT ` + tweetColumns + ` FROM tweets WHERE user_id = ? ORDER BY created_time, tweet_id LIMIT ? OFFSET ?`)
	if err := r.db.SelectContext(ctx, &tweets, q, userID, page.Limit, page.Skip); err != nil {
		return nil, err
	}
	return tweets, nil
}

// Delete removes one tweet.  ErrTweetNotFound when id matches no row.
func (r *TweetRepo) Delete(ctx context.Context, id string) error {
	q := r.db.Rebind(`DELETE FROM tweets WHERE tweet_id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return expectRow(res, ErrTweetNotFound)
}

// DeleteByUser removes every tweet of userID and reports how many went.
func (r *TweetRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM tweets WHERE user_id = ?`)
	res, err := r.db.ExecContext(ctx, q, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
