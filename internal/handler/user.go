package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/twitter-api/internal/model"
	"github.com/iliyamo/twitter-api/internal/service"
)

// UserHandler exposes user CRUD under /users.
type UserHandler struct {
	base
	users  *service.UserService
	tweets *service.TweetService
}

func NewUserHandler(users *service.UserService, tweets *service.TweetService, opts Options) *UserHandler {
	return &UserHandler{base: opts.base(), users: users, tweets: tweets}
}

// Create registers a user on behalf of an authenticated caller.
func (h *UserHandler) Create(c echo.Context) error {
	var in model.UserCreate
	if err := bindBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	u, err := h.users.Create(ctx, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) List(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	users, err := h.users.List(ctx, page)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "user_id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	u, err := h.users.Get(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// UpdateUsername renames a user to the ?username= query value.
func (h *UserHandler) UpdateUsername(c echo.Context) error {
	id, err := pathUUID(c, "user_id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	u, err := h.users.UpdateUsername(ctx, id, c.QueryParam("username"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// Delete removes a user and their tweets and returns the deleted user.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "user_id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	u, err := h.users.Delete(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// Tweets lists the tweets written by one user.
func (h *UserHandler) Tweets(c echo.Context) error {
	id, err := pathUUID(c, "user_id")
	if err != nil {
		return h.fail(c, err)
	}
	page, err := queryPage(c)
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	tweets, err := h.tweets.ListByUser(ctx, id, page)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, tweets)
}
