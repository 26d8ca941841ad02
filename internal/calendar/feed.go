// Package calendar publishes approved reservations as an iCalendar feed.
package calendar

import (
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"roombooking/internal/booking"
)

const productID = "-//roombooking//reservations//EN"

// Feed builds a VCALENDAR with one VEVENT per reservation. host qualifies the UIDs.
func Feed(spaces []booking.Space, rs []booking.Reservation, host string, now time.Time) *ical.Calendar {
	names := make(map[string]string, len(spaces))
	for _, sp := range spaces {
		names[sp.ID] = sp.Name
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText("X-WR-CALNAME", "Reservations")

	for _, r := range rs {
		cal.Children = append(cal.Children, event(r, names[r.SpaceID], host, now))
	}
	return cal
}

func event(r booking.Reservation, spaceName, host string, now time.Time) *ical.Component {
	if spaceName == "" {
		spaceName = r.SpaceID
	}
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", r.ID, host))
	ve.Props.SetText(ical.PropSummary, fmt.Sprintf("[%s] %s", spaceName, r.Title))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, r.StartAt.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, r.EndAt.UTC())
	ve.Props.SetText(ical.PropLocation, spaceName)
	if r.TeamName != "" {
		ve.Props.SetText(ical.PropDescription, r.TeamName)
	}
	return ve
}
