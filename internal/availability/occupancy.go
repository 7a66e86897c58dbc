// Package availability derives advisory per-hour occupancy views from a set
// of bookings. It is purely computational: callers pass the bookings they
// already loaded, and nothing here ever blocks a booking from being created.
package availability

import (
	"sort"
	"strconv"
	"strings"
)

// Hours of operation, inclusive on both ends.
const (
	OpenHour  = 8
	CloseHour = 22
)

// HourStatus classifies one hour slot of a room's day.
type HourStatus string

const (
	// StatusFree marks an hour with no active booking.
	StatusFree HourStatus = "FREE"
	// StatusPending marks an hour held by a booking awaiting review.
	StatusPending HourStatus = "PENDING"
	// StatusApproved marks an hour held by an approved booking.
	StatusApproved HourStatus = "APPROVED"
)

// statusRejected is the one booking status that never occupies a slot.
const statusRejected = "REJECTED"

// Booking is the minimal view of a booking the calculator needs.
type Booking struct {
	RoomID        string
	Date          string
	Time          string
	DurationHours int
	Status        string
}

// Hours returns the operational hour slots in ascending order.
func Hours() []int {
	hours := make([]int, 0, CloseHour-OpenHour+1)
	for h := OpenHour; h <= CloseHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Occupancy classifies every operational hour of the given room and date.
// Rejected bookings never occupy a slot. When bookings overlap, the first
// match in input order determines the displayed status; mutual overlap is
// accepted looseness, resolved by administrators rather than the system.
func Occupancy(roomID, date string, bookings []Booking) map[int]HourStatus {
	active := filterActive(roomID, date, bookings)

	grid := make(map[int]HourStatus, CloseHour-OpenHour+1)
	for h := OpenHour; h <= CloseHour; h++ {
		grid[h] = hourStatus(h, active)
	}
	return grid
}

// ActiveCount reports how many non-rejected bookings the room has on the date.
func ActiveCount(roomID, date string, bookings []Booking) int {
	return len(filterActive(roomID, date, bookings))
}

func filterActive(roomID, date string, bookings []Booking) []Booking {
	active := make([]Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.RoomID != roomID || booking.Date != date {
			continue
		}
		if booking.Status == statusRejected {
			continue
		}
		active = append(active, booking)
	}
	return active
}

func hourStatus(hour int, active []Booking) HourStatus {
	for _, booking := range active {
		start, ok := StartHour(booking.Time)
		if !ok {
			continue
		}
		if hour >= start && hour < start+booking.DurationHours {
			switch booking.Status {
			case string(StatusApproved):
				return StatusApproved
			default:
				return StatusPending
			}
		}
	}
	return StatusFree
}

// StartHour parses the hour component of an HH:MM time value. It reports
// false for values that do not start with a parseable hour.
func StartHour(value string) (int, bool) {
	head, _, _ := strings.Cut(value, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return hour, true
}

// BookingsOn returns the bookings that fall on the given calendar day, sorted
// by start time. All statuses are included; the monthly view shows rejected
// entries struck through rather than hiding them.
func BookingsOn(date string, bookings []Booking) []Booking {
	day := make([]Booking, 0)
	for _, booking := range bookings {
		if booking.Date == date {
			day = append(day, booking)
		}
	}
	sort.SliceStable(day, func(i, j int) bool {
		return day[i].Time < day[j].Time
	})
	return day
}

// MonthBookings returns the bookings of a calendar month keyed by day of
// month, each day sorted by start time. Dates are YYYY-MM-DD strings, so the
// grouping is pure string and integer arithmetic.
func MonthBookings(year int, month int, bookings []Booking) map[int][]Booking {
	prefix := monthPrefix(year, month)

	days := make(map[int][]Booking)
	for _, booking := range bookings {
		if !strings.HasPrefix(booking.Date, prefix) {
			continue
		}
		day, err := strconv.Atoi(booking.Date[len(prefix):])
		if err != nil || day < 1 || day > 31 {
			continue
		}
		days[day] = append(days[day], booking)
	}

	for day := range days {
		sort.SliceStable(days[day], func(i, j int) bool {
			return days[day][i].Time < days[day][j].Time
		})
	}
	return days
}

func monthPrefix(year, month int) string {
	m := strconv.Itoa(month)
	if month < 10 {
		m = "0" + m
	}
	return strconv.Itoa(year) + "-" + m + "-"
}
