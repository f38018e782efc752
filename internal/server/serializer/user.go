package serializer

import "github.com/lostandfound/lostandfound/internal/model"

// User serializes the public render of a user.
func User(m *model.User) map[string]any {
	return map[string]any{
		"id":         m.ID,
		"first_name": m.FirstName,
		"last_name":  m.LastName,
		"points":     m.Points,
	}
}

// Me serializes the render of a user for itself.
func Me(m *model.User) map[string]any {
	r := User(m)
	r["created_at"] = m.CreatedAt.UTC()
	r["notifiable"] = m.CanBeNotified()
	return r
}

// Leaderboard serializes ranked users.
func Leaderboard(users []*model.User) []map[string]any {
	r := make([]map[string]any, 0, len(users))
	for i, u := range users {
		entry := User(u)
		entry["rank"] = i + 1
		r = append(r, entry)
	}
	return r
}
