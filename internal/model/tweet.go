package model

import "time"

// Tweet models a row in the `tweets` table.  Every tweet belongs to exactly
// one user and is removed together with that user.
type Tweet struct {
	TweetID     string    `db:"tweet_id" json:"tweet_id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Text        string    `db:"text" json:"text"`
	CreatedTime time.Time `db:"created_time" json:"created_time"`
}
