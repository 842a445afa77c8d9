package guards

import "fmt"

// MinutesPerHour is the size of a tally histogram; sleep happens in hour 00
const MinutesPerHour = 60

// SleepTally is one guard's sleep histogram over minutes past midnight
type SleepTally struct {
	TotalMinutes int
	PerMinute    [MinutesPerHour]int
}

// MostOftenAsleepMinute returns the minute with the highest count, lowest
// minute on ties, and that count
func (t *SleepTally) MostOftenAsleepMinute() (minute, count int) {
	for m, c := range t.PerMinute {
		if c > count {
			minute, count = m, c
		}
	}
	return minute, count
}

func (t *SleepTally) String() string {
	minute, count := t.MostOftenAsleepMinute()
	return fmt.Sprintf("Total: %d [%d : %d]", t.TotalMinutes, minute, count)
}

// Tallies holds every guard's tally, in order of first shift
type Tallies struct {
	order []int
	byID  map[int]*SleepTally
}

// GuardIDs returns guard ids in order of first shift
func (ts *Tallies) GuardIDs() []int {
	return ts.order
}

// Get returns a guard's tally
func (ts *Tallies) Get(guardID int) (*SleepTally, bool) {
	t, ok := ts.byID[guardID]
	return t, ok
}

// Len is the number of guards seen
func (ts *Tallies) Len() int {
	return len(ts.order)
}

// BuildTallies walks chronologically sorted events and accumulates each
// guard's asleep minutes [asleep, awake)
func BuildTallies(events []Event) (*Tallies, error) {
	ts := &Tallies{byID: make(map[int]*SleepTally)}
	guard := -1
	sleepStart := -1

	for _, e := range events {
		switch e.Kind {
		case ShiftStart:
			if sleepStart != -1 {
				return nil, fmt.Errorf("%w: %s while guard #%d is asleep", ErrInvariant, e, guard)
			}
			guard = e.GuardID
			if _, ok := ts.byID[guard]; !ok {
				ts.byID[guard] = &SleepTally{}
				ts.order = append(ts.order, guard)
			}
		case AsleepStart:
			if guard == -1 {
				return nil, fmt.Errorf("%w: %s before any shift", ErrInvariant, e)
			}
			if sleepStart != -1 {
				return nil, fmt.Errorf("%w: %s while already asleep", ErrInvariant, e)
			}
			sleepStart = e.Timestamp.Minute()
		case AwakeStart:
			if guard == -1 {
				return nil, fmt.Errorf("%w: %s before any shift", ErrInvariant, e)
			}
			if sleepStart == -1 {
				return nil, fmt.Errorf("%w: %s without falling asleep", ErrInvariant, e)
			}
			t := ts.byID[guard]
			for m := sleepStart; m < e.Timestamp.Minute(); m++ {
				t.TotalMinutes++
				t.PerMinute[m]++
			}
			sleepStart = -1
		}
	}
	return ts, nil
}
