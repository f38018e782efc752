package service

import (
	"net/http"
	"strings"

	"github.com/lostandfound/lostandfound/internal/database"
	"github.com/lostandfound/lostandfound/internal/lferror"
	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/pkg/errors"
)

// LeaderboardSize is the default number of users ranked by the leaderboard.
const LeaderboardSize = 50

type (
	// RegisterParams are used to register a user profile.
	RegisterParams struct {
		Params
		FirstName         string `json:"first_name"`
		LastName          string `json:"last_name"`
		NotificationToken string `json:"notification_token"`
	}

	// TokenParams are used to update the user's notification token.
	TokenParams struct {
		Params
		Token string `json:"token"`
	}
)

// Register creates a user record with no points.
func Register(db database.Client, params RegisterParams) (*model.User, error) {
	if strings.TrimSpace(params.FirstName) == "" {
		return nil, lferror.InvalidParameter("First name can't be blank.")
	}

	user := model.NewUser()
	user.FirstName = strings.TrimSpace(params.FirstName)
	user.LastName = strings.TrimSpace(params.LastName)
	user.NotificationToken = params.NotificationToken

	if err := db.Save(user); err != nil {
		return nil, errors.Wrap(err, "could not register user")
	}
	return user, nil
}

// UpdateNotificationToken sets or clears the delivery token of the current user.
func UpdateNotificationToken(db database.Client, id string, params TokenParams) error {
	if params.User == nil || params.User.ID != id {
		return lferror.NewWithTagCode(http.StatusForbidden, "forbidden", "Can't update another user's token.")
	}

	// Points may change concurrently, so only the token field is written.
	token := strings.TrimSpace(params.Token)
	if err := db.SetNotificationToken(id, token); err != nil {
		return err
	}
	params.User.NotificationToken = token
	return nil
}

// Leaderboard returns the users with the most points.
func Leaderboard(db database.Client, limit int) ([]*model.User, error) {
	if limit <= 0 || limit > LeaderboardSize {
		limit = LeaderboardSize
	}
	return db.FindTopUsers(limit)
}
