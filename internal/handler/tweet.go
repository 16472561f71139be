package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/twitter-api/internal/model"
	"github.com/iliyamo/twitter-api/internal/service"
)

// TweetHandler exposes tweet CRUD under /tweets.
type TweetHandler struct {
	base
	tweets *service.TweetService
}

func NewTweetHandler(tweets *service.TweetService, opts Options) *TweetHandler {
	return &TweetHandler{base: opts.base(), tweets: tweets}
}

// Create posts a tweet for the user_id named in the body.
func (h *TweetHandler) Create(c echo.Context) error {
	var in model.TweetCreate
	if err := bindBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	t, err := h.tweets.Create(ctx, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TweetHandler) List(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	tweets, err := h.tweets.List(ctx, page)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, tweets)
}

func (h *TweetHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "tweet_id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	t, err := h.tweets.Get(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete removes a tweet and returns it.
func (h *TweetHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "tweet_id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	t, err := h.tweets.Delete(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}
