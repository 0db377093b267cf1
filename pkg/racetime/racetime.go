package racetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrParse is the cause of every error returned by Normalize.
var ErrParse = errors.New("malformed race time")

// maxMinutes keeps minutes*time.Minute inside an int64.
const maxMinutes = int64(1<<63-1) / int64(time.Minute) / 2

var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrParse, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// RaceTime is an elapsed race duration with second precision.
type RaceTime time.Duration

// Normalize parses a "MM:SS" race time. Leading zeros are ignored and
// seconds above 59 roll over into minutes.
func Normalize(s string) (RaceTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, &ParseError{Input: s, Reason: "expected exactly one ':' separator"}
	}
	minutes, err := parseComponent(parts[0])
	if err != nil {
		return 0, &ParseError{Input: s, Reason: "minutes " + err.Error()}
	}
	seconds, err := parseComponent(parts[1])
	if err != nil {
		return 0, &ParseError{Input: s, Reason: "seconds " + err.Error()}
	}
	if minutes+seconds/60 > maxMinutes {
		return 0, &ParseError{Input: s, Reason: "out of range"}
	}
	return RaceTime(time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second), nil
}

// MustNormalize is like Normalize but panics on malformed input.
func MustNormalize(s string) RaceTime {
	t, err := Normalize(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parseComponent(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("are empty")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("are not a non-negative integer")
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v > maxMinutes*60 {
		return 0, fmt.Errorf("are out of range")
	}
	return v, nil
}

func (t RaceTime) Duration() time.Duration {
	return time.Duration(t)
}

func (t RaceTime) Minutes() int {
	return int(time.Duration(t) / time.Minute)
}

func (t RaceTime) Seconds() int {
	return int(time.Duration(t) % time.Minute / time.Second)
}

// Stamp anchors the duration at the Unix epoch, which is how the chart
// pages expose race times as comparable timestamps.
func (t RaceTime) Stamp() time.Time {
	return epoch.Add(time.Duration(t))
}

func (t RaceTime) Before(o RaceTime) bool {
	return t < o
}

// String formats the time as MM:SS.
func (t RaceTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Minutes(), t.Seconds())
}
