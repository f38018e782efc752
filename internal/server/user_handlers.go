package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lostandfound/lostandfound/internal/database"
	"github.com/lostandfound/lostandfound/internal/lferror"
	"github.com/lostandfound/lostandfound/internal/server/serializer"
	"github.com/lostandfound/lostandfound/internal/server/service"
	"github.com/pkg/errors"
)

// user contains all user handlers.
type user struct {
	db database.Client
}

///// Register
////
//

// Register creates a user profile.
func (h *user) Register(c echo.Context) error {
	var params service.RegisterParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get user params."))
	}
	params.UserAgent = c.Request().UserAgent()

	user, err := service.Register(h.db, params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, serializer.Me(user))
}

///// Show
////
//

// Show renders a user profile. The owner gets the extended render.
func (h *user) Show(c echo.Context) error {
	user, err := h.db.FindUser(c.Param("id"))
	if err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, lferror.New("User not found."))
		}
		return errors.Wrap(err, "could not get user")
	}

	if current := currentUser(c); current != nil && current.ID == user.ID {
		return c.JSON(http.StatusOK, serializer.Me(user))
	}
	return c.JSON(http.StatusOK, serializer.User(user))
}

///// Notification token
////
//

// UpdateNotificationToken sets the push token of the current user.
// An empty token disables notifications.
func (h *user) UpdateNotificationToken(c echo.Context) error {
	var params service.TokenParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get token params."))
	}
	params.UserAgent = c.Request().UserAgent()
	params.User = currentUser(c)

	if err := service.UpdateNotificationToken(h.db, c.Param("id"), params); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Me(params.User))
}

///// Leaderboard
////
//

// Leaderboard renders the users with the most points.
func (h *user) Leaderboard(c echo.Context) error {
	var limit int
	err := echo.QueryParamsBinder(c).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Invalid limit."))
	}

	users, err := service.Leaderboard(h.db, limit)
	if err != nil {
		return errors.Wrap(err, "could not get leaderboard")
	}

	return c.JSON(http.StatusOK, serializer.Global(serializer.Leaderboard(users)))
}
