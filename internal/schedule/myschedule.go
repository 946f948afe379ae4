package schedule

import "confsched/internal/model"

// Project reduces a day's sessions and rooms to the user's selection: the
// subsequence of sessions whose id is selected, in full-schedule order (not
// click order, so the projected view stays stable), plus exactly the rooms
// those sessions reference, deduplicated and in display order.
//
// The output feeds both the selection-only grid view and calendar export;
// downstream consumers need no further filtering.
func Project(sessions []model.Session, rooms []model.Room, selectedIDs []string) ([]model.Session, []model.Room) {
	selected := idSet(selectedIDs)

	mine := make([]model.Session, 0, len(selectedIDs))
	used := make(map[int]bool)
	for _, s := range sessions {
		if selected[s.ID] {
			mine = append(mine, s)
			used[s.RoomID] = true
		}
	}

	myRooms := make([]model.Room, 0, len(used))
	for _, r := range rooms {
		if used[r.ID] {
			myRooms = append(myRooms, r)
		}
	}
	return mine, myRooms
}
