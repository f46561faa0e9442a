package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"collectio/internal/domain"
)

// record is the persisted shape of one collection. The default collection
// has no record.
type record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	NoteIDs   []string  `json:"noteIds"`
	SortOrder int       `json:"sortOrder"`
}

// encode serializes user collections. Default collections are skipped.
func encode(collections []domain.Collection) ([]byte, error) {
	records := make([]record, 0, len(collections))
	for _, c := range collections {
		if c.IsDefault || domain.IsDefaultID(c.ID) {
			continue
		}
		noteIDs := c.NoteIDs
		if noteIDs == nil {
			noteIDs = []string{}
		}
		records = append(records, record{
			ID:        c.ID,
			Name:      c.Name,
			Icon:      c.Icon,
			Color:     c.Color,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			NoteIDs:   noteIDs,
			SortOrder: c.SortOrder,
		})
	}
	return json.MarshalIndent(records, "", "  ")
}

// decode parses a blob. An empty blob is an empty list. Records that use the
// reserved id or have no id are dropped and reported in skipped.
func decode(blob []byte) (collections []domain.Collection, skipped []string, err error) {
	if len(bytes.TrimSpace(blob)) == 0 {
		return nil, nil, nil
	}

	var records []record
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, nil, fmt.Errorf("decode collections: %w", err)
	}

	collections = make([]domain.Collection, 0, len(records))
	for i, r := range records {
		switch {
		case r.ID == "":
			skipped = append(skipped, fmt.Sprintf("#%d", i))
			continue
		case domain.IsDefaultID(r.ID):
			skipped = append(skipped, r.ID)
			continue
		}
		c := domain.Collection{
			ID:        r.ID,
			Name:      r.Name,
			Icon:      r.Icon,
			Color:     r.Color,
			NoteIDs:   r.NoteIDs,
			SortOrder: r.SortOrder,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
		c.DedupeNotes()
		collections = append(collections, c)
	}
	return collections, skipped, nil
}
