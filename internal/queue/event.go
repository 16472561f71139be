// Package queue defines the activity events exchanged over RabbitMQ and
// the publisher and consumer that move them.
package queue

import "time"

// Event types published on the activity queue.
const (
	EventUserRegistered = "user.registered"
	EventUserDeleted    = "user.deleted"
	EventTweetCreated   = "tweet.created"
	EventTweetDeleted   = "tweet.deleted"
)

// ActivityEvent records one committed change.  It carries ids only so the
// consumer never needs to query the primary database.
type ActivityEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	TweetID    string    `json:"tweet_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
