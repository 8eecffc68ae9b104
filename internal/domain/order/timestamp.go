package order

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layouts the two stores are known to emit. Tried in order before the
// heuristic fallback kicks in.
var structuredLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

var digitRuns = regexp.MustCompile(`\d+`)

// Markers the spreadsheet's locale formatting uses for the half of day.
var (
	pmMarkers = []string{"PM", "오후"}
	amMarkers = []string{"AM", "오전"}
)

// ParseMillis converts an arbitrary timestamp string into a millisecond
// epoch value. It never fails: inputs from which no instant can be
// recovered yield 0, which the view sorts last.
//
// Tier 1 tries the structured layouts above. Tier 2 pulls every run of
// digits out of the string and reads them as year, month, day and
// optionally hour, minute, second. The stores emit enough ad-hoc,
// locale-formatted variants ("25.12.25 오후 3시") that rejecting a
// record over its date text is not an option.
func ParseMillis(input string) int64 {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0
	}

	for _, layout := range structuredLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}

	groups := digitRuns.FindAllString(s, -1)
	if len(groups) < 3 {
		return 0
	}

	nums := make([]int, 0, 6)
	for i, g := range groups {
		if i == 6 {
			break
		}
		n, err := strconv.Atoi(g)
		if err != nil {
			// Digit run too large for int; irrecoverable.
			return 0
		}
		nums = append(nums, n)
	}
	for len(nums) < 6 {
		nums = append(nums, 0)
	}

	year, month, day := nums[0], nums[1], nums[2]
	hour, minute, sec := nums[3], nums[4], nums[5]

	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0
	}

	upper := strings.ToUpper(s)
	if containsAny(upper, pmMarkers) && hour < 12 {
		hour += 12
	}
	if containsAny(upper, amMarkers) && hour == 12 {
		hour = 0
	}
	if hour > 23 || minute > 59 || sec > 59 {
		return 0
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.Local)
	return t.UnixMilli()
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
