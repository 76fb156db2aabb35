package http

import (
	"time"

	"annonces-api/internal/domain"
)

// PublicPostingResponse is a posting as shown to other users. It carries no
// internal identifiers.
type PublicPostingResponse struct {
	Type         domain.PostingType `json:"type"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Image        string             `json:"image,omitempty"`
	Sectors      []string           `json:"secteurActivite"`
	Availability string             `json:"disponibilite"`
	MaxDuration  string             `json:"tempsMax"`
	Experience   string             `json:"experience"`
	Username     string             `json:"username"`
	Date         string             `json:"date"`
	Token        string             `json:"token"`
}

// PostingRecordResponse is the stored posting record, including its identifier.
type PostingRecordResponse struct {
	ID           string             `json:"_id"`
	Username     string             `json:"username"`
	Token        string             `json:"token"`
	Type         domain.PostingType `json:"type"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Image        string             `json:"image,omitempty"`
	Sectors      []string           `json:"secteurActivite"`
	Availability string             `json:"disponibilite"`
	MaxDuration  string             `json:"tempsMax"`
	Experience   string             `json:"experience"`
	City         string             `json:"ville,omitempty"`
	Date         string             `json:"date"`
}

func publicPostingResponse(p domain.Posting) PublicPostingResponse {
	return PublicPostingResponse{
		Type:         p.Type,
		Title:        p.Title,
		Description:  p.Description,
		Image:        p.Image,
		Sectors:      p.SectorNames(),
		Availability: p.Availability,
		MaxDuration:  p.MaxDuration,
		Experience:   p.Experience,
		Username:     p.OwnerUsername,
		Date:         formatDate(p.CreatedAt),
		Token:        p.Token,
	}
}

func publicPostingResponses(postings []domain.Posting) []PublicPostingResponse {
	resp := make([]PublicPostingResponse, len(postings))
	for i := range postings {
		resp[i] = publicPostingResponse(postings[i])
	}
	return resp
}

// ownPostingResponse shows a posting to its owner: sectors by name and the
// owner by username.
func ownPostingResponse(p domain.Posting) PostingRecordResponse {
	resp := postingRecord(p)
	resp.Username = p.OwnerUsername
	resp.Sectors = p.SectorNames()
	return resp
}

// createdPostingResponse returns the record as persisted: the owner and the
// sectors are references.
func createdPostingResponse(p domain.Posting) PostingRecordResponse {
	resp := postingRecord(p)
	resp.Username = p.OwnerID
	resp.Sectors = domain.SectorIDs(p.Sectors)
	return resp
}

func postingRecord(p domain.Posting) PostingRecordResponse {
	return PostingRecordResponse{
		ID:           p.ID,
		Token:        p.Token,
		Type:         p.Type,
		Title:        p.Title,
		Description:  p.Description,
		Image:        p.Image,
		Availability: p.Availability,
		MaxDuration:  p.MaxDuration,
		Experience:   p.Experience,
		City:         p.City,
		Date:         formatDate(p.CreatedAt),
	}
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
