package entity

import (
	"strings"
	"time"
)

// Consultant is a member of the agency roster. Ids are small integers assigned
// as max(existing)+1, starting at 1.
type Consultant struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Matches reports whether the consultant's name or role contains the query,
// case-insensitively. An empty query matches everything.
func (c Consultant) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Role), q)
}
