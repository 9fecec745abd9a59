package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
)

// NumberDateLayout is the DDMMYY prefix of every bill number
const NumberDateLayout = "020106"

// NumberPrefix returns the bill number prefix for the day of now
func NumberPrefix(now time.Time) string {
	return now.Format(NumberDateLayout)
}

// DayBounds returns the first and last instant of the calendar day of now,
// in now's location.
func DayBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day in b's location
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// NextBillNumber returns DDMMYY-NNN, one past the highest suffix among
// bills of the same type numbered and dated on the day of now. Delivery
// vouchers are not numbered.
func NextBillNumber(billType enum.BillType, existing []entity.Bill, now time.Time) string {
	if !billType.IsNumbered() {
		return ""
	}

	prefix := NumberPrefix(now)
	highest := 0
	for _, b := range existing {
		if b.Type != billType || !strings.HasPrefix(b.BillNumber, prefix) || !SameDay(b.Date, now) {
			continue
		}
		if n, ok := numberSuffix(b.BillNumber); ok && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, highest+1)
}

// numberSuffix reads the run of digits right after the first '-', so
// "020126-002-x" yields 2. Numbers with no digits there are ignored.
func numberSuffix(number string) (int, bool) {
	_, suffix, found := strings.Cut(number, "-")
	if !found {
		return 0, false
	}
	end := 0
	for end < len(suffix) && suffix[end] >= '0' && suffix[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(suffix[:end])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
