// Package lfclient is a client of the lostandfound HTTP API.
package lfclient

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// HeaderUserID carries the identity of the client's user.
const HeaderUserID = "X-User-ID"

type (
	// A Client defines all interactions that can be performed on a lostandfound server.
	Client interface {
		// Version returns the server version.
		Version() (string, error)
		// Register creates a user and uses it as identity.
		Register(firstname, lastname, token string) (*User, error)
		// Identity returns the user ID sent along requests.
		Identity() string
		// SetIdentity sets the user ID sent along requests.
		SetIdentity(userID string)
		// User returns a user profile.
		User(id string) (*User, error)
		// SetNotificationToken sets the push token of the current identity.
		SetNotificationToken(token string) (*User, error)
		// Report reports a lost or found item.
		Report(r Report) (*ReportResult, error)
		// Items lists items, newest first.
		Items(f Filter) ([]Item, error)
		// Item returns an item.
		Item(id string) (*Item, error)
		// Leaderboard returns the users with the most points.
		Leaderboard(limit int) ([]User, error)
	}

	client struct {
		http     *resty.Client
		identity string
	}

	p map[string]any
)

// NewDefaultClient returns a new Client with default timeouts.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(resty.New().SetTimeout(30*time.Second), endpoint)
}

// NewClient returns a new Client.
func NewClient(c *resty.Client, endpoint string) (Client, error) {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, errors.Wrap(err, "could not parse endpoint")
	}

	c.SetBaseURL(endpoint).
		SetHeader("Accept", "application/json").
		SetError(&Error{})
	return &client{http: c}, nil
}

func (c *client) request() *resty.Request {
	r := c.http.R()
	if c.identity != "" {
		r.SetHeader(HeaderUserID, c.identity)
	}
	return r
}

func (c *client) Identity() string {
	return c.identity
}

func (c *client) SetIdentity(userID string) {
	c.identity = userID
}

func (c *client) Version() (string, error) {
	var v struct {
		Version string `json:"version"`
	}

	res, err := c.request().SetResult(&v).Get("/version")
	if err := check(res, err); err != nil {
		return "", err
	}
	return v.Version, nil
}

func (c *client) Register(firstname, lastname, token string) (*User, error) {
	var user User

	res, err := c.request().
		SetBody(p{"first_name": firstname, "last_name": lastname, "notification_token": token}).
		SetResult(&user).
		Post("/users")
	if err := check(res, err); err != nil {
		return nil, err
	}

	c.identity = user.ID
	return &user, nil
}

func (c *client) User(id string) (*User, error) {
	var user User

	res, err := c.request().
		SetPathParam("id", id).
		SetResult(&user).
		Get("/users/{id}")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *client) SetNotificationToken(token string) (*User, error) {
	if c.identity == "" {
		return nil, errors.New("no identity defined")
	}

	var user User

	res, err := c.request().
		SetPathParam("id", c.identity).
		SetBody(p{"token": token}).
		SetResult(&user).
		Put("/users/{id}/notification_token")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *client) Report(r Report) (*ReportResult, error) {
	var result ReportResult

	res, err := c.request().
		SetBody(r).
		SetResult(&result).
		Post("/items")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) Items(f Filter) ([]Item, error) {
	var list struct {
		Data []Item `json:"data"`
	}

	res, err := c.request().
		SetQueryParamsFromValues(f.values()).
		SetResult(&list).
		Get("/items")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return list.Data, nil
}

func (c *client) Item(id string) (*Item, error) {
	var item Item

	res, err := c.request().
		SetPathParam("id", id).
		SetResult(&item).
		Get("/items/{id}")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *client) Leaderboard(limit int) ([]User, error) {
	var list struct {
		Data []User `json:"data"`
	}

	r := c.request().SetResult(&list)
	if limit > 0 {
		r.SetQueryParam("limit", strconv.Itoa(limit))
	}

	res, err := r.Get("/leaderboard")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return list.Data, nil
}

func check(res *resty.Response, err error) error {
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}

	if !res.IsError() {
		return nil
	}

	if lferr, ok := res.Error().(*Error); ok && lferr.Err.Message != "" {
		lferr.StatusCode = res.StatusCode()
		return lferr
	}
	return &Error{StatusCode: res.StatusCode(), Err: errorBody{Message: http.StatusText(res.StatusCode())}}
}
