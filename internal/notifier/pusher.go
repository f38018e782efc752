package notifier

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// ProviderLog only logs messages.
	ProviderLog = "log"
	// ProviderFCM posts messages to an FCM HTTP v1 compatible endpoint.
	ProviderFCM = "fcm"
)

// A PusherConfig selects and configures a push provider.
type PusherConfig struct {
	Provider string
	Endpoint string
	Key      string
	Timeout  time.Duration
}

// NewPusher returns the Pusher of the configured provider.
func NewPusher(cfg PusherConfig) (Pusher, error) {
	switch cfg.Provider {
	case "", ProviderLog:
		return &LogPusher{}, nil
	case ProviderFCM:
		if cfg.Endpoint == "" {
			return nil, errors.New("push endpoint not found")
		}
		return NewFCMPusher(cfg.Endpoint, cfg.Key, cfg.Timeout), nil
	default:
		return nil, errors.Errorf("unknown push provider: %s", cfg.Provider)
	}
}

// A LogPusher writes messages to the logs instead of delivering them.
type LogPusher struct{}

// Push implements Pusher.
func (*LogPusher) Push(_ context.Context, m Message) error {
	logrus.WithFields(logrus.Fields{
		"token": m.Token,
		"title": m.Title,
	}).Info(m.Body)
	return nil
}

type (
	// An FCMPusher sends messages to an FCM HTTP v1 compatible endpoint.
	FCMPusher struct {
		client   *resty.Client
		endpoint string
	}

	fcmRequest struct {
		Message fcmMessage `json:"message"`
	}

	fcmMessage struct {
		Token        string          `json:"token"`
		Notification fcmNotification `json:"notification"`
	}

	fcmNotification struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}

	fcmError struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
			Details []struct {
				ErrorCode string `json:"errorCode"`
			} `json:"details"`
		} `json:"error"`
	}
)

// NewFCMPusher returns a new FCMPusher. The key is sent as a bearer token when not empty.
func NewFCMPusher(endpoint, key string, timeout time.Duration) *FCMPusher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	if key != "" {
		c.SetAuthToken(key)
	}

	return &FCMPusher{client: c, endpoint: endpoint}
}

// Push implements Pusher.
func (p *FCMPusher) Push(ctx context.Context, m Message) error {
	var ferr fcmError
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(fcmRequest{
			Message: fcmMessage{
				Token: m.Token,
				Notification: fcmNotification{
					Title: m.Title,
					Body:  m.Body,
				},
			},
		}).
		SetError(&ferr).
		Post(p.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not perform push request")
	}

	if resp.IsSuccess() {
		return nil
	}

	if resp.StatusCode() == http.StatusNotFound || ferr.unregistered() {
		return ErrInvalidToken
	}
	return errors.Errorf("push service status %d: %s", resp.StatusCode(), ferr.Error.Message)
}

func (e *fcmError) unregistered() bool {
	for _, d := range e.Error.Details {
		if d.ErrorCode == "UNREGISTERED" {
			return true
		}
	}
	return false
}
