package domain

import "time"

// User is a member of the service. Users are created by the seeding tool and
// are read-only for the posting endpoints.
type User struct {
	ID        string
	Username  string
	Token     string
	Wants     []Sector
	CanDo     []Sector
	CreatedAt time.Time
}

// Identity is the authenticated caller handed to service operations once its
// session token has been resolved.
type Identity struct {
	UserID   string
	Username string
	Wants    []Sector
	CanDo    []Sector
}

// IdentityOf builds the identity of an already resolved user.
func IdentityOf(user User) Identity {
	return Identity{
		UserID:   user.ID,
		Username: user.Username,
		Wants:    user.Wants,
		CanDo:    user.CanDo,
	}
}

// SectorIDs returns the identifiers of the given sectors in order.
func SectorIDs(sectors []Sector) []string {
	ids := make([]string, len(sectors))
	for i := range sectors {
		ids[i] = sectors[i].ID
	}
	return ids
}
