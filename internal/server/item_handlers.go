package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lostandfound/lostandfound/internal/database"
	"github.com/lostandfound/lostandfound/internal/ledger"
	"github.com/lostandfound/lostandfound/internal/lferror"
	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/lostandfound/lostandfound/internal/server/serializer"
	"github.com/lostandfound/lostandfound/internal/server/service"
	"github.com/pkg/errors"
)

// item contains all item handlers.
type item struct {
	db     database.Client
	ledger *ledger.Ledger
}

///// Report
////
//

// Report stores a lost or found item reported by the current user.
// The matching runs asynchronously from the change log.
func (h *item) Report(c echo.Context) error {
	var params service.ReportParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get item params."))
	}
	params.UserAgent = c.Request().UserAgent()
	params.User = currentUser(c)

	report := service.NewReport(h.db, h.ledger, params)
	if err := report.Execute(); err != nil {
		return err
	}

	r := echo.Map{
		"item":    serializer.Item(report.Item, params.User),
		"awarded": report.Awarded,
	}
	if report.Awarded {
		r["points"] = report.Points
	}
	if report.PointsError != nil {
		r["points_error"] = "Item was reported but points could not be awarded."
	}
	return c.JSON(http.StatusCreated, r)
}

///// List
////
//

// List renders the reported items, newest first.
func (h *item) List(c echo.Context) error {
	var (
		params   service.ListParams
		status   string
		lat, lng float64
	)
	err := echo.QueryParamsBinder(c).
		String("category", &params.Category).
		String("status", &status).
		Float64("radius", &params.Radius).
		Int("limit", &params.Limit).
		Float64("lat", &lat).
		Float64("lng", &lng).
		BindError()
	if err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Invalid query parameters."))
	}

	params.Status = model.Status(status)
	params.User = currentUser(c)
	if c.QueryParam("lat") != "" && c.QueryParam("lng") != "" {
		params.Near = &model.Location{Latitude: lat, Longitude: lng}
	}

	items, err := service.ListItems(h.db, params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Global(serializer.Items(items, params.User)))
}

///// Show
////
//

// Show renders an item.
func (h *item) Show(c echo.Context) error {
	item, err := h.db.FindItem(c.Param("id"))
	if err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, lferror.New("Item not found."))
		}
		return errors.Wrap(err, "could not get item")
	}

	return c.JSON(http.StatusOK, serializer.Item(item, currentUser(c)))
}
