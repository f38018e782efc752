package service

import "github.com/lostandfound/lostandfound/internal/model"

// M is an arbitrary map.
type M map[string]any

// Params are the basic fields used in requests.
type Params struct {
	UserAgent string `json:"-"`
	User      *model.User `json:"-"`
}
