package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

// Limits on user supplied fields, counted in characters.
const (
	UsernameMaxLen       = 15
	UsernameUpdateMinLen = 4
	NameMaxLen           = 50
	PasswordMinLen       = 8
	PasswordMaxLen       = 64
	TweetMaxLen          = 280

	// bcrypt refuses passwords longer than this many bytes.
	PasswordMaxBytes = 72

	DefaultPageLimit = 100
)

// UserCreate is the registration payload.
type UserCreate struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	BirthDate Date   `json:"birth_date"`
	Password  string `json:"password"`
}

// Normalize trims whitespace and lower-cases the email in place.
func (u *UserCreate) Normalize() {
	u.Username = strings.TrimSpace(u.Username)
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

func (u UserCreate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Username, validation.Required, validation.RuneLength(1, UsernameMaxLen)),
		validation.Field(&u.FirstName, validation.Required, validation.RuneLength(1, NameMaxLen)),
		validation.Field(&u.LastName, validation.Required, validation.RuneLength(1, NameMaxLen)),
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.BirthDate, validation.By(pastDate)),
		validation.Field(&u.Password,
			validation.Required,
			validation.RuneLength(PasswordMinLen, PasswordMaxLen),
			validation.By(maxBytes(PasswordMaxBytes)),
		),
	)
}

// UsernameUpdate carries the only mutable user field.
type UsernameUpdate struct {
	Username string `json:"username"`
}

func (u UsernameUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Username, validation.Required, validation.RuneLength(UsernameUpdateMinLen, UsernameMaxLen)),
	)
}

// TweetCreate is the payload for posting a tweet.  UserID is accepted in any
// form uuid.Parse understands and stored canonically.
type TweetCreate struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// Normalize rewrites UserID in canonical lower-case form when it parses.
func (t *TweetCreate) Normalize() {
	t.UserID = strings.TrimSpace(t.UserID)
	if id, err := uuid.Parse(t.UserID); err == nil {
		t.UserID = id.String()
	}
}

func (t TweetCreate) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.UserID, validation.Required, validation.By(validUUID)),
		validation.Field(&t.Text, validation.Required, validation.By(notBlank), validation.RuneLength(1, TweetMaxLen)),
	)
}

// Page selects a window of a list with skip/limit semantics.
type Page struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// DefaultPage returns the first DefaultPageLimit rows.
func DefaultPage() Page { return Page{Skip: 0, Limit: DefaultPageLimit} }

func (p Page) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Skip, validation.Min(0)),
		validation.Field(&p.Limit, validation.Min(0)),
	)
}

func pastDate(value interface{}) error {
	d, _ := value.(Date)
	if d.IsZero() {
		return errors.New("cannot be blank")
	}
	if d.After(time.Now().UTC()) {
		return errors.New("cannot be in the future")
	}
	return nil
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

func validUUID(value interface{}) error {
	s, _ := value.(string)
	if _, err := uuid.Parse(s); err != nil {
		return errors.New("must be a valid UUID")
	}
	return nil
}

func maxBytes(n int) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > n {
			return fmt.Errorf("must be at most %d bytes", n)
		}
		return nil
	}
}
