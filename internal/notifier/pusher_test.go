package notifier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lostandfound/lostandfound/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPusher(t *testing.T) {
	p, err := notifier.NewPusher(notifier.PusherConfig{})
	assert.NoError(t, err)
	assert.IsType(t, &notifier.LogPusher{}, p)
	assert.NoError(t, p.Push(context.Background(), notifier.Message{Token: "t", Title: "title", Body: "body"}))

	_, err = notifier.NewPusher(notifier.PusherConfig{Provider: notifier.ProviderFCM})
	assert.EqualError(t, err, "push endpoint not found")

	p, err = notifier.NewPusher(notifier.PusherConfig{Provider: notifier.ProviderFCM, Endpoint: "http://localhost"})
	assert.NoError(t, err)
	assert.IsType(t, &notifier.FCMPusher{}, p)

	_, err = notifier.NewPusher(notifier.PusherConfig{Provider: "apns"})
	assert.EqualError(t, err, "unknown push provider: apns")
}

func TestFCMPusher(t *testing.T) {
	var received map[string]any
	var authorization string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		received = nil
		_ = json.NewDecoder(r.Body).Decode(&received)

		w.Header().Set("Content-Type", "application/json")
		token := received["message"].(map[string]any)["token"]
		switch token {
		case "gone":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`))
		case "unregistered":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"unregistered","status":"INVALID_ARGUMENT","details":[{"errorCode":"UNREGISTERED"}]}}`))
		case "boom":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`))
		default:
			_, _ = w.Write([]byte(`{"name":"projects/lostandfound/messages/1"}`))
		}
	}))
	defer srv.Close()

	p := notifier.NewFCMPusher(srv.URL, "server-key", time.Second)
	ctx := context.Background()

	err := p.Push(ctx, notifier.Message{Token: "device", Title: "title", Body: "body"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer server-key", authorization)
	assert.Equal(t, map[string]any{
		"message": map[string]any{
			"token": "device",
			"notification": map[string]any{
				"title": "title",
				"body":  "body",
			},
		},
	}, received)

	assert.Equal(t, notifier.ErrInvalidToken, p.Push(ctx, notifier.Message{Token: "gone"}))
	assert.Equal(t, notifier.ErrInvalidToken, p.Push(ctx, notifier.Message{Token: "unregistered"}))
	assert.EqualError(t, p.Push(ctx, notifier.Message{Token: "boom"}), "push service status 500: internal")
}
