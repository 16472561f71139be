package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/twitter-api/internal/database"
	"github.com/iliyamo/twitter-api/internal/database/dbtest"
	"github.com/iliyamo/twitter-api/internal/model"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newUser(n int) *model.User {
	return &model.User{
		UserID:       uuid.NewString(),
		Username:     fmt.Sprintf("user%d", n),
		FirstName:    "First",
		LastName:     "Last",
		Email:        fmt.Sprintf("user%d@example.com", n),
		BirthDate:    model.NewDate(1990, time.January, 2),
		PasswordHash: "hash",
		CreatedAt:    base.Add(time.Duration(n) * time.Second),
	}
}

func newTweet(userID string, n int) *model.Tweet {
	return &model.Tweet{
		TweetID:     uuid.NewString(),
		UserID:      userID,
		Text:        fmt.Sprintf("tweet %d", n),
		CreatedTime: base.Add(time.Duration(n) * time.Second),
	}
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(dbtest.New(t))

	u := newUser(1)
	require.NoError(t, users.Create(ctx, u))

	byID, err := users.GetByID(ctx, u.UserID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, byID.Username)
	assert.Equal(t, "1990-01-02", byID.BirthDate.String())
	assert.True(t, u.CreatedAt.Equal(byID.CreatedAt))
	assert.Equal(t, "hash", byID.PasswordHash)

	byName, err := users.GetByUsername(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, byName.UserID)

	byEmail, err := users.GetByEmail(ctx, "user1@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, byEmail.UserID)

	_, err = users.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepo_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(dbtest.New(t))
	require.NoError(t, users.Create(ctx, newUser(1)))

	sameName := newUser(2)
	sameName.Username = "user1"
	err := users.Create(ctx, sameName)
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "username", dup.Field)
	assert.ErrorIs(t, err, ErrDuplicate)

	sameEmail := newUser(3)
	sameEmail.Email = "user1@example.com"
	err = users.Create(ctx, sameEmail)
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
}

func TestUserRepo_ListPaging(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(dbtest.New(t))
	// insert out of order; List sorts by created_at
	for _, n := range []int{3, 1, 2} {
		require.NoError(t, users.Create(ctx, newUser(n)))
	}

	all, err := users.List(ctx, model.DefaultPage())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"user1", "user2", "user3"}, usernames(all))

	page, err := users.List(ctx, model.Page{Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"user2"}, usernames(page))

	empty, err := users.List(ctx, model.Page{Skip: 0, Limit: 0})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	past, err := users.List(ctx, model.Page{Skip: 10, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestUserRepo_UpdateUsername(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(dbtest.New(t))
	a, b := newUser(1), newUser(2)
	require.NoError(t, users.Create(ctx, a))
	require.NoError(t, users.Create(ctx, b))

	require.NoError(t, users.UpdateUsername(ctx, a.UserID, "renamed"))
	got, err := users.GetByID(ctx, a.UserID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Username)

	err = users.UpdateUsername(ctx, b.UserID, "renamed")
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "username", dup.Field)

	err = users.UpdateUsername(ctx, uuid.NewString(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepo_DeleteInTxWithTweets(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	users, tweets := NewUserRepo(db), NewTweetRepo(db)

	u := newUser(1)
	require.NoError(t, users.Create(ctx, u))
	for i := 0; i < 3; i++ {
		require.NoError(t, tweets.Create(ctx, newTweet(u.UserID, i)))
	}

	err := database.WithTx(ctx, db, func(ctx context.Context, tx database.DBTX) error {
		n, err := tweets.WithDB(tx).DeleteByUser(ctx, u.UserID)
		if err != nil {
			return err
		}
		assert.EqualValues(t, 3, n)
		return users.WithDB(tx).Delete(ctx, u.UserID)
	})
	require.NoError(t, err)

	_, err = users.GetByID(ctx, u.UserID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	left, err := tweets.List(ctx, model.DefaultPage())
	require.NoError(t, err)
	assert.Empty(t, left)

	assert.ErrorIs(t, users.Delete(ctx, u.UserID), ErrUserNotFound)
}

func TestTweetRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	users, tweets := NewUserRepo(db), NewTweetRepo(db)

	alice, bob := newUser(1), newUser(2)
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	t1 := newTweet(alice.UserID, 1)
	t2 := newTweet(bob.UserID, 2)
	t3 := newTweet(alice.UserID, 3)
	for _, tw := range []*model.Tweet{t3, t1, t2} {
		require.NoError(t, tweets.Create(ctx, tw))
	}

	got, err := tweets.GetByID(ctx, t1.TweetID)
	require.NoError(t, err)
	assert.Equal(t, "tweet 1", got.Text)
	assert.Equal(t, alice.UserID, got.UserID)

	all, err := tweets.List(ctx, model.DefaultPage())
	require.NoError(t, err)
	assert.Equal(t, []string{t1.TweetID, t2.TweetID, t3.TweetID}, tweetIDs(all))

	mine, err := tweets.ListByUser(ctx, alice.UserID, model.DefaultPage())
	require.NoError(t, err)
	assert.Equal(t, []string{t1.TweetID, t3.TweetID}, tweetIDs(mine))

	second, err := tweets.ListByUser(ctx, alice.UserID, model.Page{Skip: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{t3.TweetID}, tweetIDs(second))

	require.NoError(t, tweets.Delete(ctx, t1.TweetID))
	_, err = tweets.GetByID(ctx, t1.TweetID)
	assert.ErrorIs(t, err, ErrTweetNotFound)
	assert.ErrorIs(t, tweets.Delete(ctx, t1.TweetID), ErrTweetNotFound)
}

func TestTweetRepo_CreateRejectsUnknownUser(t *testing.T) {
	tweets := NewTweetRepo(dbtest.New(t))
	err := tweets.Create(context.Background(), newTweet(uuid.NewString(), 1))
	require.Error(t, err)
}

func TestUniqueViolation(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, uniqueViolation(plain))
	assert.NoError(t, uniqueViolation(nil))

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"mysql username", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'email' for key 'users.uq_users_username'"}, "username"},
		{"mysql email", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'username@x.io' for key 'users.uq_users_email'"}, "email"},
		{"postgres", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}), "email"},
		{"sqlite", errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"), "username"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var dup *DuplicateError
			require.ErrorAs(t, uniqueViolation(tc.err), &dup)
			assert.Equal(t, tc.want, dup.Field)
		})
	}

	other := &mysql.MySQLError{Number: 1452, Message: "foreign key"}
	assert.Same(t, error(other), uniqueViolation(other))
}

func usernames(us []model.User) []string {
	out := make([]string, 0, len(us))
	for _, u := range us {
		out = append(out, u.Username)
	}
	return out
}

func tweetIDs(ts []model.Tweet) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.TweetID)
	}
	return out
}
