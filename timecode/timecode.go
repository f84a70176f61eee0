// Package timecode converts between MLT textual timecodes and time.Duration.
//
// Shotcut writes clip boundaries as (D:)HH:MM:SS.mmm with millisecond
// precision. The day prefix only appears on projects longer than 24 hours.
package timecode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var pattern = regexp.MustCompile(`(\d+:)?(\d{2}):(\d{2}):(\d{2})\.(\d{3})`)

// ErrInvalid reports text that does not contain a recognizable timecode.
var ErrInvalid = errors.New("timecode: invalid format")

// Parse converts a (D:)HH:MM:SS.mmm string to a duration. Text that does not
// match the pattern yields the zero duration: project files carry durations in
// other notations (frame counts, plain seconds) on nodes we never touch, and
// rejecting them would reject the whole project.
func Parse(s string) time.Duration {
	d, err := ParseStrict(s)
	if err != nil {
		return 0
	}
	return d
}

// ParseStrict is Parse without the zero-duration fallback. Callers that need
// to skip a node on a malformed timecode use this variant.
func ParseStrict(s string) (time.Duration, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	days := 0
	if m[1] != "" {
		days, _ = strconv.Atoi(m[1][:len(m[1])-1])
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	seconds, _ := strconv.Atoi(m[4])
	millis, _ := strconv.Atoi(m[5])

	return time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// Format converts a duration to a (D:)HH:MM:SS.mmm string. The day prefix is
// emitted only when the duration spans at least one day, so Format is the
// exact inverse of Parse for non-negative millisecond-granular durations.
func Format(d time.Duration) string {
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour

	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	millis := d / time.Millisecond

	s := fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
	if days > 0 {
		s = fmt.Sprintf("%d:%s", days, s)
	}
	return s
}
