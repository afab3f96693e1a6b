// Package availability answers which rooms are free for a stay.
// The functions here are pure; the service package feeds them a consistent snapshot of the store.
package availability

import (
	"fmt"
	bookingModel "hotelier/internal/domains/booking/model"
	roomModel "hotelier/internal/domains/room/model"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"slices"
	"strings"
)

// ParseRange parses a YYYY-MM-DD pair and checks that check-in comes strictly before check-out.
func ParseRange(checkIn, checkOut string) (gModel.Date, gModel.Date, error) {
	if strings.TrimSpace(checkIn) == "" || strings.TrimSpace(checkOut) == "" {
		return gModel.Date{}, gModel.Date{}, failure.InvalidDateRange("check_in and check_out are required") //nolint:wrapcheck
	}

	in, err := gModel.ParseDate(checkIn)
	if err != nil {
		return gModel.Date{}, gModel.Date{}, failure.InvalidDateRange(fmt.Sprintf("check_in %q is not a calendar date", checkIn)) //nolint:wrapcheck
	}

	out, err := gModel.ParseDate(checkOut)
	if err != nil {
		return gModel.Date{}, gModel.Date{}, failure.InvalidDateRange(fmt.Sprintf("check_out %q is not a calendar date", checkOut)) //nolint:wrapcheck
	}

	if err := ValidateRange(in, out); err != nil {
		return gModel.Date{}, gModel.Date{}, err
	}

	return in, out, nil
}

func ValidateRange(checkIn, checkOut gModel.Date) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return failure.InvalidDateRange("check_in and check_out are required") //nolint:wrapcheck
	}

	if !checkIn.Before(checkOut) {
		return failure.InvalidDateRange(fmt.Sprintf("check_out %s must be after check_in %s", checkOut, checkIn)) //nolint:wrapcheck
	}

	return nil
}

// Conflicting returns the active bookings of roomID overlapping [checkIn, checkOut), skipping excludeID.
func Conflicting(bookings []bookingModel.Booking, roomID int64, checkIn, checkOut gModel.Date, excludeID int64) []bookingModel.Booking {
	conflicts := []bookingModel.Booking{}

	for _, booking := range bookings {
		if booking.ID == excludeID || booking.RoomID != roomID || !booking.Status.Active() {
			continue
		}

		if booking.Overlaps(checkIn, checkOut) {
			conflicts = append(conflicts, booking)
		}
	}

	return conflicts
}

// Available returns the bookable rooms without an overlapping active booking, ordered by room number.
func Available(rooms []roomModel.Room, bookings []bookingModel.Booking, checkIn, checkOut gModel.Date) []roomModel.Room {
	busy := map[int64]bool{}

	for _, booking := range bookings {
		if booking.Status.Active() && booking.Overlaps(checkIn, checkOut) {
			busy[booking.RoomID] = true
		}
	}

	available := []roomModel.Room{}

	for _, room := range rooms {
		if room.Bookable() && !busy[room.ID] {
			available = append(available, room)
		}
	}

	slices.SortStableFunc(available, func(a, b roomModel.Room) int {
		return CompareRoomNumbers(a.Number, b.Number)
	})

	return available
}

// CompareRoomNumbers orders numeric room numbers numerically ("9" before "10", "001" before "2") and falls back to text.
func CompareRoomNumbers(a, b string) int {
	if isDigits(a) && isDigits(b) {
		x, y := trimLeadingZeros(a), trimLeadingZeros(b)
		if len(x) != len(y) {
			return len(x) - len(y)
		}

		if c := strings.Compare(x, y); c != 0 {
			return c
		}
	}

	return strings.Compare(a, b)
}

func trimLeadingZeros(value string) string {
	trimmed := strings.TrimLeft(value, "0")
	if trimmed == "" {
		return "0"
	}

	return trimmed
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}

	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// Occupied reports whether any active booking other than excludeID has a guest in roomID on day.
func Occupied(bookings []bookingModel.Booking, roomID int64, day gModel.Date, excludeID int64) bool {
	for _, booking := range bookings {
		if booking.ID == excludeID || booking.RoomID != roomID || !booking.Status.Active() {
			continue
		}

		if booking.Covers(day) {
			return true
		}
	}

	return false
}
