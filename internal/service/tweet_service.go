package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/model"
	"github.com/iliyamo/twitter-api/internal/queue"
	"github.com/iliyamo/twitter-api/internal/repository"
)

// TweetService manages tweets.  Every tweet names an existing author.
type TweetService struct {
	users  *repository.UserRepo
	tweets *repository.TweetRepo
	events *Notifier
	log    *zap.Logger
	now    func() time.Time
}

func NewTweetService(db *sqlx.DB, events *Notifier, log *zap.Logger) *TweetService {
	return &TweetService{
		users:  repository.NewUserRepo(db),
		tweets: repository.NewTweetRepo(db),
		events: events,
		log:    log,
		now:    time.Now,
	}
}

func (s *TweetService) Create(ctx context.Context, in model.TweetCreate) (*model.Tweet, error) {
	in.Normalize()
	if err := validationFailed(in.Validate()); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, in.UserID)
	if _, err := userResult(author, err); err != nil {
		return nil, err
	}

	t := &model.Tweet{
		TweetID:     uuid.NewString(),
		UserID:      author.UserID,
		Text:        in.Text,
		CreatedTime: timestamp(s.now),
	}
	if err := s.tweets.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}

	s.log.Debug("tweet created", zap.String("tweet_id", t.TweetID), zap.String("user_id", t.UserID))
	s.events.Notify(ctx, queue.ActivityEvent{
		Type:     queue.EventTweetCreated,
		UserID:   t.UserID,
		Username: author.Username,
		TweetID:  t.TweetID,
	})
	return t, nil
}

func (s *TweetService) Get(ctx context.Context, id string) (*model.Tweet, error) {
	t, err := s.tweets.GetByID(ctx, id)
	if errors.Is(err, repository.ErrTweetNotFound) {
		return nil, errTweetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tweet: %w", err)
	}
	return t, nil
}

// List returns tweets from all users in creation order.
func (s *TweetService) List(ctx context.Context, page model.Page) ([]model.Tweet, error) {
	if err := validationFailed(page.Validate()); err != nil {
		return nil, err
	}
	tweets, err := s.tweets.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	return tweets, nil
}

// ListByUser returns the tweets of one user; an unknown user is NotFound
// rather than an empty list.
func (s *TweetService) ListByUser(ctx context.Context, userID string, page model.Page) ([]model.Tweet, error) {
	if err := validationFailed(page.Validate()); err != nil {
		return nil, err
	}
	if _, err := userResult(s.users.GetByID(ctx, userID)); err != nil {
		return nil, err
	}
	tweets, err := s.tweets.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	return tweets, nil
}

// Delete removes a tweet and returns it as it was.
func (s *TweetService) Delete(ctx context.Context, id string) (*model.Tweet, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.tweets.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTweetNotFound) {
			return nil, errTweetNotFound
		}
		return nil, fmt.Errorf("delete tweet: %w", err)
	}

	s.events.Notify(ctx, queue.ActivityEvent{
		Type:    queue.EventTweetDeleted,
		UserID:  t.UserID,
		TweetID: t.TweetID,
	})
	return t, nil
}
