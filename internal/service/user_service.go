package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/database"
	"github.com/iliyamo/twitter-api/internal/model"
	"github.com/iliyamo/twitter-api/internal/queue"
	"github.com/iliyamo/twitter-api/internal/repository"
	"github.com/iliyamo/twitter-api/internal/utils"
)

// UserService manages accounts.  Registration and the authenticated
// create endpoint share Create.
type UserService struct {
	db         *sqlx.DB
	users      *repository.UserRepo
	tweets     *repository.TweetRepo
	events     *Notifier
	log        *zap.Logger
	bcryptCost int
	now        func() time.Time
}

func NewUserService(db *sqlx.DB, events *Notifier, log *zap.Logger, bcryptCost int) *UserService {
	return &UserService{
		db:         db,
		users:      repository.NewUserRepo(db),
		tweets:     repository.NewTweetRepo(db),
		events:     events,
		log:        log,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// timestamp is the creation time stored on new rows.  Microseconds are the
// finest precision every supported store keeps.
func timestamp(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Microsecond)
}

// Create validates in, rejects a taken email or username and stores the
// new user with a bcrypt hashed password.
func (s *UserService) Create(ctx context.Context, in model.UserCreate) (*model.User, error) {
	in.Normalize()
	if err := validationFailed(in.Validate()); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, conflict("email")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, conflict("username")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		UserID:       uuid.NewString(),
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		BirthDate:    in.BirthDate,
		PasswordHash: hash,
		CreatedAt:    timestamp(s.now),
	}
	if err := s.users.Create(ctx, u); err != nil {
		// lost a race with a concurrent signup
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, conflict(dup.Field)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user created", zap.String("user_id", u.UserID), zap.String("username", u.Username))
	s.events.Notify(ctx, queue.ActivityEvent{
		Type:     queue.EventUserRegistered,
		UserID:   u.UserID,
		Username: u.Username,
	})
	return u, nil
}

func conflict(field string) *ConflictError {
	switch field {
	case "email":
		return &ConflictError{Field: "email", Message: "email already registered"}
	case "username":
		return &ConflictError{Field: "username", Message: "username already registered"}
	}
	return &ConflictError{Message: "user already exists"}
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	return userResult(u, err)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	return userResult(u, err)
}

func userResult(u *model.User, err error) (*model.User, error) {
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List returns users in creation order.
func (s *UserService) List(ctx context.Context, page model.Page) ([]model.User, error) {
	if err := validationFailed(page.Validate()); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUsername renames user id.  Renaming to the current name is a no-op;
// a name held by someone else is a ConflictError and nothing changes.
func (s *UserService) UpdateUsername(ctx context.Context, id, username string) (*model.User, error) {
	in := model.UsernameUpdate{Username: strings.TrimSpace(username)}
	if err := validationFailed(in.Validate()); err != nil {
		return nil, err
	}

	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Username == in.Username {
		return u, nil
	}

	// the unique index on username decides who wins a concurrent rename
	if err := s.users.UpdateUsername(ctx, id, in.Username); err != nil {
		var dup *repository.DuplicateError
		switch {
		case errors.As(err, &dup):
			return nil, &ConflictError{Field: "username", Message: "username already taken"}
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("update username: %w", err)
	}

	s.log.Info("username changed", zap.String("user_id", id), zap.String("from", u.Username), zap.String("to", in.Username))
	u.Username = in.Username
	return u, nil
}

// Delete removes the user and all of their tweets in one transaction and
// returns the user as it was.
func (s *UserService) Delete(ctx context.Context, id string) (*model.User, error) {
	var (
		deleted *model.User
		tweets  int64
	)
	err := database.WithTx(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		u, err := s.users.WithDB(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		if tweets, err = s.tweets.WithDB(tx).DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("delete tweets: %w", err)
		}
		if err := s.users.WithDB(tx).Delete(ctx, id); err != nil {
			return err
		}
		deleted = u
		return nil
	})
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}

	s.log.Info("user deleted", zap.String("user_id", id), zap.Int64("tweets", tweets))
	s.events.Notify(ctx, queue.ActivityEvent{
		Type:     queue.EventUserDeleted,
		UserID:   deleted.UserID,
		Username: deleted.Username,
		Detail:   fmt.Sprintf("tweets=%d", tweets),
	})
	return deleted, nil
}
