package availability_test

import (
	"errors"
	"hotelier/internal/domains/availability"
	bookingModel "hotelier/internal/domains/booking/model"
	roomModel "hotelier/internal/domains/room/model"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) gModel.Date {
	t.Helper()

	parsed, err := gModel.ParseDate(value)
	require.NoError(t, err)

	return parsed
}

func booking(t *testing.T, id, roomID int64, checkIn, checkOut string, status bookingModel.Status) bookingModel.Booking {
	t.Helper()

	return bookingModel.Booking{
		ID:       id,
		RoomID:   roomID,
		CheckIn:  date(t, checkIn),
		CheckOut: date(t, checkOut),
		Status:   status,
	}
}

func numbers(rooms []roomModel.Room) []string {
	res := make([]string, len(rooms))
	for i, room := range rooms {
		res[i] = room.Number
	}

	return res
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  bool
	}{
		{name: "valid", checkIn: "2025-05-01", checkOut: "2025-05-05"},
		{name: "single night", checkIn: "2025-05-01", checkOut: "2025-05-02"},
		{name: "same day", checkIn: "2025-05-01", checkOut: "2025-05-01", wantErr: true},
		{name: "reversed", checkIn: "2025-05-05", checkOut: "2025-05-01", wantErr: true},
		{name: "not a date", checkIn: "tomorrow", checkOut: "2025-05-01", wantErr: true},
		{name: "impossible day", checkIn: "2025-02-30", checkOut: "2025-03-02", wantErr: true},
		{name: "timestamp rejected", checkIn: "2025-05-01T00:00:00Z", checkOut: "2025-05-03", wantErr: true},
		{name: "missing", checkIn: "", checkOut: "2025-05-03", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out, err := availability.ParseRange(tt.checkIn, tt.checkOut)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, failure.ErrInvalidDateRange))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.checkIn, in.String())
			assert.Equal(t, tt.checkOut, out.String())
		})
	}
}

func TestAvailable(t *testing.T) {
	rooms := []roomModel.Room{
		{ID: 1, Number: "102", Status: roomModel.StatusAvailable},
		{ID: 2, Number: "101", Status: roomModel.StatusOccupied},
		{ID: 3, Number: "103", Status: roomModel.StatusMaintenance},
		{ID: 4, Number: "104", Status: roomModel.StatusInactive},
		{ID: 5, Number: "9", Status: roomModel.StatusCleaning},
		{ID: 6, Number: "105", Status: roomModel.StatusAvailable},
	}

	bookings := []bookingModel.Booking{
		booking(t, 1, 1, "2025-05-01", "2025-05-05", bookingModel.StatusConfirmed),
		booking(t, 2, 2, "2025-05-03", "2025-05-04", bookingModel.StatusCancelled),
		booking(t, 3, 6, "2025-05-06", "2025-05-08", bookingModel.StatusPending),
		booking(t, 4, 5, "2025-04-20", "2025-05-02", bookingModel.StatusCompleted),
	}

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     []string
	}{
		{
			name:     "overlapping active booking excludes the room",
			checkIn:  "2025-05-02",
			checkOut: "2025-05-03",
			want:     []string{"9", "101", "105"},
		},
		{
			name:     "checkout day equals next checkin day is free",
			checkIn:  "2025-05-05",
			checkOut: "2025-05-10",
			want:     []string{"9", "101", "102"},
		},
		{
			name:     "range ending on an existing checkin is free",
			checkIn:  "2025-04-28",
			checkOut: "2025-05-01",
			want:     []string{"9", "101", "102", "105"},
		},
		{
			name:     "range covering several bookings",
			checkIn:  "2025-04-01",
			checkOut: "2025-06-01",
			want:     []string{"9", "101"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := availability.Available(rooms, bookings, date(t, tt.checkIn), date(t, tt.checkOut))
			assert.Equal(t, tt.want, numbers(got))
		})
	}
}

// Every excluded room must have an overlapping active booking and every included room must have none.
func TestAvailableExcludesExactlyOverlaps(t *testing.T) {
	base := date(t, "2025-05-01")

	rooms := []roomModel.Room{}
	bookings := []bookingModel.Booking{}

	for idx := range 10 {
		id := int64(idx + 1)
		rooms = append(rooms, roomModel.Room{ID: id, Number: string(rune('A' + idx)), Status: roomModel.StatusAvailable})

		in := gModel.DateOf(base.AddDate(0, 0, idx*2))
		bookings = append(bookings, bookingModel.Booking{
			ID:       id,
			RoomID:   id,
			CheckIn:  in,
			CheckOut: gModel.DateOf(in.AddDate(0, 0, 3)),
			Status:   bookingModel.StatusPending,
		})
	}

	for offset := range 20 {
		checkIn := gModel.DateOf(base.AddDate(0, 0, offset))
		checkOut := gModel.DateOf(checkIn.Add(48 * time.Hour))

		free := map[int64]bool{}
		for _, room := range availability.Available(rooms, bookings, checkIn, checkOut) {
			free[room.ID] = true
		}

		for _, b := range bookings {
			overlap := b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn)
			assert.Equal(t, !overlap, free[b.RoomID], "offset %d room %d", offset, b.RoomID)
		}
	}
}

func TestConflicting(t *testing.T) {
	bookings := []bookingModel.Booking{
		booking(t, 1, 1, "2025-05-01", "2025-05-05", bookingModel.StatusPending),
		booking(t, 2, 1, "2025-05-10", "2025-05-12", bookingModel.StatusConfirmed),
		booking(t, 3, 1, "2025-05-04", "2025-05-06", bookingModel.StatusCancelled),
		booking(t, 4, 2, "2025-05-01", "2025-05-05", bookingModel.StatusConfirmed),
	}

	conflicts := availability.Conflicting(bookings, 1, date(t, "2025-05-04"), date(t, "2025-05-11"), 0)
	require.Len(t, conflicts, 2)
	assert.Equal(t, int64(1), conflicts[0].ID)
	assert.Equal(t, int64(2), conflicts[1].ID)

	assert.Empty(t, availability.Conflicting(bookings, 1, date(t, "2025-05-02"), date(t, "2025-05-04"), 1))
	assert.Empty(t, availability.Conflicting(bookings, 1, date(t, "2025-05-05"), date(t, "2025-05-10"), 0))
}

func TestOccupied(t *testing.T) {
	bookings := []bookingModel.Booking{
		booking(t, 1, 1, "2025-05-01", "2025-05-05", bookingModel.StatusConfirmed),
		booking(t, 2, 1, "2025-05-10", "2025-05-12", bookingModel.StatusPending),
	}

	assert.True(t, availability.Occupied(bookings, 1, date(t, "2025-05-01"), 0))
	assert.True(t, availability.Occupied(bookings, 1, date(t, "2025-05-04"), 0))
	assert.False(t, availability.Occupied(bookings, 1, date(t, "2025-05-05"), 0))
	assert.False(t, availability.Occupied(bookings, 1, date(t, "2025-05-03"), 1))
	assert.False(t, availability.Occupied(bookings, 2, date(t, "2025-05-03"), 0))
}

func TestCompareRoomNumbers(t *testing.T) {
	assert.Negative(t, availability.CompareRoomNumbers("9", "10"))
	assert.Positive(t, availability.CompareRoomNumbers("201", "103"))
	assert.Negative(t, availability.CompareRoomNumbers("A1", "B1"))
	assert.Zero(t, availability.CompareRoomNumbers("101", "101"))

	tests := []struct {
		name string
		a, b string
		less bool
	}{
		{name: "leading zeros before longer number", a: "001", b: "2", less: true},
		{name: "leading zeros after smaller number", a: "010", b: "9", less: false},
		{name: "zero padded equal values ordered by text", a: "007", b: "7", less: true},
		{name: "all zeros", a: "000", b: "1", less: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.less {
				assert.Negative(t, availability.CompareRoomNumbers(tt.a, tt.b))
				assert.Positive(t, availability.CompareRoomNumbers(tt.b, tt.a))

				return
			}

			assert.Positive(t, availability.CompareRoomNumbers(tt.a, tt.b))
			assert.Negative(t, availability.CompareRoomNumbers(tt.b, tt.a))
		})
	}
}
