package server_test

import (
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestRequestRegistration(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	r.POST("/users").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"Request body can't be empty"}}`, r.Body.String())
	})

	params := gofight.D{
		"last_name": "Abitbol",
	}
	r.POST("/users").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-parameter","message":"First name can't be blank."}}`, r.Body.String())
	})

	params["first_name"] = "George"
	params["notification_token"] = "device-token"
	r.POST("/users").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		id := string(v.GetStringBytes("id"))
		assert.Regexp(t, `^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-4[a-fA-F0-9]{3}-[8|9|aA|bB][a-fA-F0-9]{3}-[a-fA-F0-9]{12}$`, id)
		assert.Equal(t, "George", string(v.GetStringBytes("first_name")))
		assert.Equal(t, 0, v.GetInt("points"))
		assert.True(t, v.GetBool("notifiable"))
		assert.False(t, v.Exists("notification_token"))

		user, err := ctrl.Database.FindUser(id)
		assert.NoError(t, err)
		assert.Equal(t, "device-token", user.NotificationToken)
	})
}

func TestRequestShowUser(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	george := createUser(ctrl, "George", "")
	pavle := createUser(ctrl, "Pavle", "")

	r.GET("/users/unknown").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":{"message":"User not found."}}`, r.Body.String())
	})

	r.GET("/users/"+george.ID).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, george.ID, string(v.GetStringBytes("id")))
		assert.False(t, v.Exists("notifiable"))
	})

	r.GET("/users/"+george.ID).SetHeader(identity(pavle)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.False(t, v.Exists("notifiable"))
	})

	r.GET("/users/"+george.ID).SetHeader(identity(george)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.True(t, v.Exists("notifiable"))
		assert.False(t, v.GetBool("notifiable"))
	})
}

func TestRequestNotificationToken(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	george := createUser(ctrl, "George", "")
	pavle := createUser(ctrl, "Pavle", "")
	params := gofight.D{"token": "device-token"}

	r.PUT("/users/"+george.ID+"/notification_token").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"Missing user identity."}}`, r.Body.String())
	})

	r.PUT("/users/"+george.ID+"/notification_token").SetJSON(params).SetHeader(gofight.H{"X-User-ID": "ghost"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"No such user for given identity."}}`, r.Body.String())
	})

	r.PUT("/users/"+george.ID+"/notification_token").SetJSON(params).SetHeader(identity(pavle)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusForbidden, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"forbidden","message":"Can't update another user's token."}}`, r.Body.String())
	})

	r.PUT("/users/"+george.ID+"/notification_token").SetJSON(params).SetHeader(identity(george)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.True(t, v.GetBool("notifiable"))
	})

	user, err := ctrl.Database.FindUser(george.ID)
	assert.NoError(t, err)
	assert.Equal(t, "device-token", user.NotificationToken)
}

func TestRequestLeaderboard(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	george := createUser(ctrl, "George", "")
	pavle := createUser(ctrl, "Pavle", "")
	_, err := ctrl.Ledger.Award(pavle.ID, 10)
	assert.NoError(t, err)
	_, err = ctrl.Ledger.Award(george.ID, 5)
	assert.NoError(t, err)

	r.GET("/leaderboard").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		entries := v.GetArray("data")
		assert.Len(t, entries, 2)
		assert.Equal(t, pavle.ID, string(entries[0].GetStringBytes("id")))
		assert.Equal(t, 10, entries[0].GetInt("points"))
		assert.Equal(t, 1, entries[0].GetInt("rank"))
		assert.Equal(t, 2, entries[1].GetInt("rank"))
	})

	r.GET("/leaderboard").SetQuery(gofight.H{"limit": "1"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Len(t, v.GetArray("data"), 1)
	})

	r.GET("/leaderboard").SetQuery(gofight.H{"limit": "many"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"Invalid limit."}}`, r.Body.String())
	})
}
