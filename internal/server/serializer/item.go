package serializer

import "github.com/lostandfound/lostandfound/internal/model"

// Item serializes the render of an item.
// Secret details are only rendered to the user who reported the item.
func Item(m *model.Item, viewer *model.User) map[string]any {
	r := map[string]any{
		"id":          m.ID,
		"user_id":     m.UserID,
		"status":      m.Status,
		"category":    m.Category,
		"description": m.Description,
		"location": map[string]any{
			"latitude":  m.Location.Latitude,
			"longitude": m.Location.Longitude,
		},
		"timestamp": m.Timestamp.UTC(),
	}

	if m.ImageURL != "" {
		r["image_url"] = m.ImageURL
	}

	if viewer != nil && viewer.ID == m.UserID {
		r["secret_details"] = m.SecretDetails
	}

	return r
}

// Items serializes a list of items.
func Items(items []*model.Item, viewer *model.User) []map[string]any {
	r := make([]map[string]any, 0, len(items))
	for _, item := range items {
		r = append(r, Item(item, viewer))
	}
	return r
}
