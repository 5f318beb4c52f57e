package cart

import (
	"encoding/json"
	"fmt"
)

// snapshotVersion is written alongside the state. Version 0 is the only
// layout so far.
const snapshotVersion = 0

// snapshot is the persisted session layout:
// {"state": {...}, "version": 0}.
type snapshot struct {
	State   snapshotState `json:"state"`
	Version int           `json:"version"`
}

type snapshotState struct {
	Cart            []Line    `json:"cart"`
	Wishlist        []string  `json:"wishlist"`
	User            *User     `json:"user"`
	Token           string    `json:"token,omitempty"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	RecentlyViewed  []Product `json:"recentlyViewed"`
}

func encodeSnapshot(s *session) ([]byte, error) {
	snap := snapshot{
		State: snapshotState{
			Cart:            nonNilLines(s.lines),
			Wishlist:        nonNilStrings(s.wishlist),
			User:            s.user,
			Token:           s.token,
			IsAuthenticated: s.user != nil,
			RecentlyViewed:  nonNilProducts(s.recent),
		},
		Version: snapshotVersion,
	}
	return json.Marshal(snap)
}

// decodeSnapshot parses data and repairs anything that would break the cart
// invariants: lines with quantity below 1 are dropped and duplicate keys are
// merged.
func decodeSnapshot(data []byte, recentLimit int) (*session, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	s := &session{}
	for _, line := range snap.State.Cart {
		if line.Quantity < 1 || line.ProductID == "" {
			continue
		}
		if line.SelectedShade != nil {
			line.SelectedShade = normalizeShade(*line.SelectedShade)
		}
		if i := s.find(line.ProductID, line.SelectedShade); i >= 0 {
			s.lines[i].Quantity += line.Quantity
			continue
		}
		s.lines = append(s.lines, line)
	}

	seen := make(map[string]bool, len(snap.State.Wishlist))
	for _, id := range snap.State.Wishlist {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		s.wishlist = append(s.wishlist, id)
	}

	if snap.State.IsAuthenticated && snap.State.User != nil {
		s.user = snap.State.User
		s.token = snap.State.Token
	}

	seen = make(map[string]bool, len(snap.State.RecentlyViewed))
	for _, p := range snap.State.RecentlyViewed {
		if p.ID == "" || seen[p.ID] || len(s.recent) >= recentLimit {
			continue
		}
		seen[p.ID] = true
		s.recent = append(s.recent, p)
	}

	return s, nil
}

func nonNilLines(lines []Line) []Line {
	if lines == nil {
		return []Line{}
	}
	return lines
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilProducts(v []Product) []Product {
	if v == nil {
		return []Product{}
	}
	return v
}
