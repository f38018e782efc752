package service

import (
	"math"

	"github.com/lostandfound/lostandfound/internal/database"
	"github.com/lostandfound/lostandfound/internal/lferror"
	"github.com/lostandfound/lostandfound/internal/model"
)

// Mean Earth radius in meters.
const earthRadius = 6_371_008.8

// A ListParams filters the item list.
type ListParams struct {
	Params
	Category string
	Status   model.Status
	// Radius filter, in meters around Near. Ignored when Near is nil or Radius is not positive.
	Near   *model.Location
	Radius float64
	Limit  int
}

// ListItems returns the items matching params, newest first.
func ListItems(db database.Client, params ListParams) ([]*model.Item, error) {
	if params.Status != "" && !params.Status.Valid() {
		return nil, lferror.InvalidParameter("Status must be LOST or FOUND.")
	}

	if params.Near != nil && !ValidLocation(*params.Near) {
		return nil, lferror.InvalidParameter("Invalid location.")
	}

	radius := params.Near != nil && params.Radius > 0

	// The limit is applied after the radius filter.
	limit := params.Limit
	if radius {
		limit = 0
	}

	items, err := db.FindItemsByParams(params.Category, params.Status, limit)
	if err != nil {
		return nil, err
	}

	if !radius {
		return items, nil
	}

	var n int
	for _, item := range items {
		if Distance(*params.Near, item.Location) > params.Radius {
			continue
		}
		items[n] = item
		n++
		if params.Limit > 0 && n == params.Limit {
			break
		}
	}
	return items[:n], nil
}

// ValidLocation returns true for coordinates within WGS84 bounds.
func ValidLocation(l model.Location) bool {
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

// Distance returns the great-circle distance in meters between a and b.
func Distance(a, b model.Location) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dlat := lat2 - lat1
	dlng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	return 2 * earthRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}
