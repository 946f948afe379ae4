package schedule

import "confsched/internal/model"

// Placement locates one session in the grid: its room column and the
// half-open block range [StartBlock, EndBlock).
type Placement struct {
	Session    model.Session `json:"session"`
	RoomColumn int           `json:"roomColumn"`
	StartBlock int           `json:"startBlock"`
	EndBlock   int           `json:"endBlock"`
}

// BuildPlacements maps each session to a (room column, block range) cell
// range. RoomColumn is the room's index within the ordered room list, not
// its id. Sessions whose room id is absent from the list are skipped rather
// than failing the whole view; a session in a hidden room must not break
// rendering of the rest.
//
// Intervals are clipped to the display window and never collapse below one
// block, so a session outside the window still gets a visible edge placement
// instead of vanishing. Same-room overlaps are not resolved into
// sub-columns; flagging those is the conflict detector's job when both are
// selected.
func BuildPlacements(g Grid, sessions []model.Session, rooms []model.Room) []Placement {
	colByRoom := make(map[int]int, len(rooms))
	for i, r := range rooms {
		colByRoom[r.ID] = i
	}

	last := g.BlockCount()
	placements := make([]Placement, 0, len(sessions))
	for _, s := range sessions {
		col, ok := colByRoom[s.RoomID]
		if !ok {
			continue
		}

		start := g.BlockIndex(s.StartsAt)
		end := g.BlockIndex(s.EndsAt)
		if start < 0 {
			start = 0
		}
		if start > last-1 {
			start = last - 1
		}
		if end > last {
			end = last
		}
		if end <= start {
			end = start + 1
		}

		placements = append(placements, Placement{
			Session:    s,
			RoomColumn: col,
			StartBlock: start,
			EndBlock:   end,
		})
	}
	return placements
}
