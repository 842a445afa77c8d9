package guards

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMalformedEvent indicates a line is not a well-formed guard record
	ErrMalformedEvent = errors.New("guards: malformed event")
	// ErrInvariant indicates the event sequence is impossible, e.g. a shift
	// starting while a guard is asleep
	ErrInvariant = errors.New("guards: event sequence invariant violated")
	// ErrNoGuards indicates there is nothing to analyse
	ErrNoGuards = errors.New("guards: no guard shifts recorded")
)

// EventKind is what happened at an event's timestamp
type EventKind string

const (
	ShiftStart  EventKind = "begins shift"
	AsleepStart EventKind = "falls asleep"
	AwakeStart  EventKind = "wakes up"
)

const timestampLayout = "2006-01-02 15:04"

var eventPattern = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2})\] (?:Guard #(\d+) )?(begins shift|falls asleep|wakes up)$`)

// Event is one record of the guard log
type Event struct {
	Timestamp time.Time
	Kind      EventKind
	GuardID   int // Set only for ShiftStart
}

// String renders the event in input format
func (e Event) String() string {
	guard := ""
	if e.Kind == ShiftStart {
		guard = fmt.Sprintf("Guard #%d ", e.GuardID)
	}
	return fmt.Sprintf("[%s] %s%s", e.Timestamp.Format(timestampLayout), guard, e.Kind)
}

// ParseEvent parses one log line. The parsed event must render back to
// exactly the trimmed line.
func ParseEvent(line string) (Event, error) {
	trimmed := strings.TrimSpace(line)
	m := eventPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Event{}, fmt.Errorf("%w: %q", ErrMalformedEvent, trimmed)
	}

	ts, err := time.Parse(timestampLayout, m[1])
	if err != nil {
		return Event{}, fmt.Errorf("%w: bad timestamp %q: %v", ErrMalformedEvent, m[1], err)
	}

	e := Event{Timestamp: ts, Kind: EventKind(m[3])}
	switch {
	case e.Kind == ShiftStart && m[2] == "":
		return Event{}, fmt.Errorf("%w: shift without guard id: %q", ErrMalformedEvent, trimmed)
	case e.Kind != ShiftStart && m[2] != "":
		return Event{}, fmt.Errorf("%w: guard id on %q event: %q", ErrMalformedEvent, e.Kind, trimmed)
	case e.Kind == ShiftStart:
		id, err := strconv.Atoi(m[2])
		if err != nil {
			return Event{}, fmt.Errorf("%w: bad guard id %q: %v", ErrMalformedEvent, m[2], err)
		}
		e.GuardID = id
	}

	if e.String() != trimmed {
		return Event{}, fmt.Errorf("%w: %q does not round-trip (got %q)", ErrMalformedEvent, trimmed, e.String())
	}
	return e, nil
}

// ParseEvents reads every non-blank line and returns the events sorted
// chronologically. Events with equal timestamps keep their input order.
func ParseEvents(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := ParseEvent(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}

// ParseFile opens path and parses it with ParseEvents
func ParseFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return ParseEvents(f)
}
