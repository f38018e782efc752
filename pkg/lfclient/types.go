package lfclient

import (
	"net/url"
	"strconv"
	"time"
)

// Item statuses.
const (
	StatusLost  = "LOST"
	StatusFound = "FOUND"
)

type (
	// A Location is a WGS84 position.
	Location struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}

	// An Item is a reported lost or found item.
	// SecretDetails is only returned to the user who reported the item.
	Item struct {
		ID            string    `json:"id"`
		UserID        string    `json:"user_id"`
		Status        string    `json:"status"`
		Category      string    `json:"category"`
		Description   string    `json:"description"`
		SecretDetails string    `json:"secret_details,omitempty"`
		ImageURL      string    `json:"image_url,omitempty"`
		Location      Location  `json:"location"`
		Timestamp     time.Time `json:"timestamp"`
	}

	// A User is a user profile.
	User struct {
		ID         string `json:"id"`
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		Points     int64  `json:"points"`
		Rank       int    `json:"rank,omitempty"`
		Notifiable bool   `json:"notifiable,omitempty"`
	}

	// A Report is an item report sent to the server.
	Report struct {
		Status        string   `json:"status"`
		Category      string   `json:"category"`
		Description   string   `json:"description,omitempty"`
		SecretDetails string   `json:"secret_details,omitempty"`
		ImageURL      string   `json:"image_url,omitempty"`
		Location      Location `json:"location"`
	}

	// A ReportResult is the server answer to a Report.
	// PointsError is set when the item was stored but the points were not awarded.
	ReportResult struct {
		Item        Item   `json:"item"`
		Awarded     bool   `json:"awarded"`
		Points      int64  `json:"points"`
		PointsError string `json:"points_error"`
	}

	// A Filter restricts the listed items.
	Filter struct {
		Category string
		Status   string
		Near     *Location
		Radius   float64 // meters
		Limit    int
	}
)

func (f Filter) values() url.Values {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.Near != nil {
		v.Set("lat", strconv.FormatFloat(f.Near.Latitude, 'f', -1, 64))
		v.Set("lng", strconv.FormatFloat(f.Near.Longitude, 'f', -1, 64))
		if f.Radius > 0 {
			v.Set("radius", strconv.FormatFloat(f.Radius, 'f', -1, 64))
		}
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}
