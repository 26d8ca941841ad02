package booking

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type SpaceUsage struct {
	SpaceID       string          `json:"space_id"`
	SpaceName     string          `json:"space_name"`
	Approved      int             `json:"approved"`
	Pending       int             `json:"pending"`
	ApprovedHours decimal.Decimal `json:"approved_hours"`
}

var secondsPerHour = decimal.NewFromInt(3600)

// Summarize counts reservations per space and totals approved hours, clipped to
// [from, to) when bounds are set. Spaces keep their given order; reservations on
// unknown spaces are appended by id.
func Summarize(spaces []Space, rs []Reservation, from, to time.Time) []SpaceUsage {
	out := make([]SpaceUsage, 0, len(spaces))
	index := make(map[string]int, len(spaces))
	for _, sp := range spaces {
		index[sp.ID] = len(out)
		out = append(out, SpaceUsage{SpaceID: sp.ID, SpaceName: sp.Name, ApprovedHours: decimal.Zero})
	}

	var orphans []string
	for _, r := range rs {
		i, ok := index[r.SpaceID]
		if !ok {
			index[r.SpaceID] = len(out)
			i = len(out)
			out = append(out, SpaceUsage{SpaceID: r.SpaceID, ApprovedHours: decimal.Zero})
			orphans = append(orphans, r.SpaceID)
		}
		switch r.Status {
		case StatusApproved:
			out[i].Approved++
			out[i].ApprovedHours = out[i].ApprovedHours.Add(hours(clip(r, from, to)))
		case StatusPending:
			out[i].Pending++
		}
	}

	if len(orphans) > 1 {
		tail := out[len(spaces):]
		sort.Slice(tail, func(a, b int) bool { return tail[a].SpaceID < tail[b].SpaceID })
	}
	for i := range out {
		out[i].ApprovedHours = out[i].ApprovedHours.Round(2)
	}
	return out
}

func clip(r Reservation, from, to time.Time) time.Duration {
	start, end := r.StartAt, r.EndAt
	if !from.IsZero() && start.Before(from) {
		start = from
	}
	if !to.IsZero() && end.After(to) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

func hours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d / time.Second)).Div(secondsPerHour)
}
