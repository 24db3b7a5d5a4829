package plan

import (
	"time"

	"github.com/crewtide/crewplan/internal/interval"
	"github.com/crewtide/crewplan/internal/member"
)

type seedItem struct {
	name  string
	owner string
	start interval.Time
	end   interval.Time
	subs  []seedItem
}

// seedSchedule is the demo installation week used by `init --seed`.
var seedSchedule = []seedItem{
	{
		name: "Mark flagstone pathway locations", owner: "christian",
		start: at(6, 8, 0), end: at(6, 10, 0),
		subs: []seedItem{
			{name: "Measure and mark corners", owner: "christian", start: at(6, 8, 0), end: at(6, 9, 0)},
			{name: "Place temporary markers", owner: "christian", start: at(6, 9, 0), end: at(6, 10, 0)},
		},
	},
	{name: "Install steel edging (pathway & greenhouse)", owner: "christian", start: at(6, 10, 0), end: at(6, 12, 0)},
	{name: "Complete bog filter installation", owner: "christian", start: at(6, 13, 0), end: at(6, 15, 0)},
	{name: "Handle greenhouse and deck fixes/finishing", owner: "christian", start: at(6, 15, 0), end: at(6, 17, 0)},
	{name: "Gather trashcan pad leveling input", owner: "christian", start: at(6, 9, 0), end: at(6, 10, 0)},
	{name: "Flagstone pathway installation", owner: "crew", start: at(6, 8, 0), end: at(7, 16, 0)},
	{name: "Plant area around the pond", owner: "crew", start: at(6, 8, 0), end: at(7, 16, 0)},
	{name: "Tree planting (Persimmon, Mexican Plum)", owner: "crew", start: at(6, 13, 0), end: at(7, 15, 0)},
	{name: "Oversee driveway demo", owner: "christian", start: at(7, 8, 0), end: at(7, 12, 0)},
	{name: "Install steel edging (back of pergola bed)", owner: "christian", start: at(7, 13, 0), end: at(7, 17, 0)},
	{name: "Supervise permeable paver installation", owner: "jordan", start: at(8, 8, 0), end: at(9, 17, 0)},
	{name: "Oversee centerpiece planting (pergola)", owner: "jordan", start: at(8, 9, 0), end: at(8, 12, 0)},
	{name: "Flagstone pathway edging & finishing", owner: "jordan", start: at(8, 13, 0), end: at(8, 17, 0)},
	{name: "Trashcan pad leveling", owner: "jordan", start: at(9, 8, 0), end: at(10, 12, 0)},
	{name: "Final walkthrough & punch list", owner: "jordan", start: at(10, 13, 0), end: at(10, 17, 0)},
	{name: "Crew picks up 1 pallet of flagstone from Whittlesey", owner: "crew", start: at(6, 7, 0), end: at(6, 9, 0)},
	{name: "Material pickup: plants, soil, mulch", owner: "crew", start: at(6, 7, 0), end: at(6, 9, 0)},
	{name: "Material pickup: wood & stain for deck", owner: "crew", start: at(7, 7, 0), end: at(7, 9, 0)},
}

func at(day, hour, minute int) interval.Time {
	return interval.At(2025, time.January, day, hour, minute)
}

// Seed builds a store pre-populated with the demo schedule.
func Seed(reg *member.Registry) (*Store, error) {
	s := NewStore(reg)
	for _, item := range seedSchedule {
		iv, err := interval.New(item.start, item.end)
		if err != nil {
			return nil, err
		}
		t, err := s.AddTask(item.name, item.owner, iv)
		if err != nil {
			return nil, err
		}
		for _, sub := range item.subs {
			siv, err := interval.New(sub.start, sub.end)
			if err != nil {
				return nil, err
			}
			if _, err := s.AddSubtask(t.ID, sub.name, sub.owner, siv); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
