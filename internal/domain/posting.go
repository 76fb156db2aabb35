package domain

import "time"

type PostingType string

const (
	PostingTypeOffer   PostingType = "Offre"
	PostingTypeRequest PostingType = "Demande"
)

// Valid reports whether t is one of the known posting types.
func (t PostingType) Valid() bool {
	return t == PostingTypeOffer || t == PostingTypeRequest
}

// Sector is shared reference data describing an activity sector.
type Sector struct {
	ID   string
	Name string
}

// Posting is an offer or a request published by a user.
type Posting struct {
	ID            string
	OwnerID       string
	OwnerUsername string
	Token         string
	Type          PostingType
	Title         string
	Description   string
	Image         string
	Sectors       []Sector
	Availability  string
	MaxDuration   string
	Experience    string
	City          string
	CreatedAt     time.Time
}

// SectorNames returns the names of the posting's sectors in order.
func (p Posting) SectorNames() []string {
	names := make([]string, len(p.Sectors))
	for i := range p.Sectors {
		names[i] = p.Sectors[i].Name
	}
	return names
}
