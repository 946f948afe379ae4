package schedule

import "confsched/internal/model"

// Overlaps reports whether two sessions overlap in time under the half-open
// interval rule: a session ending exactly when another starts does not
// overlap it.
func Overlaps(a, b model.Session) bool {
	return a.StartsAt.Before(b.EndsAt) && b.StartsAt.Before(a.EndsAt)
}

// Conflicts returns the ids of selected sessions that overlap at least one
// other selected session. Pairwise over the selection only, so cost is
// O(k^2) in the number of picks, never in the full session count.
//
// Callers rendering a selection-only view suppress this computation
// entirely; that view exists to browse without conflict highlighting.
func Conflicts(sessions []model.Session, selectedIDs []string) map[string]bool {
	selected := idSet(selectedIDs)
	picked := make([]model.Session, 0, len(selected))
	for _, s := range sessions {
		if selected[s.ID] {
			picked = append(picked, s)
		}
	}

	conflicts := make(map[string]bool)
	for i := 0; i < len(picked); i++ {
		for j := i + 1; j < len(picked); j++ {
			if Overlaps(picked[i], picked[j]) {
				conflicts[picked[i].ID] = true
				conflicts[picked[j].ID] = true
			}
		}
	}
	return conflicts
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
