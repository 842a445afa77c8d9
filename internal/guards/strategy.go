package guards

// Strategy is the guard and minute picked by one analysis
type Strategy struct {
	GuardID int
	Minute  int
}

// Product is the puzzle answer for a strategy
func (s Strategy) Product() int {
	return s.GuardID * s.Minute
}

// SleepiestGuard picks the guard with the most total minutes asleep and
// that guard's most-asleep minute. Ties go to the guard seen first.
func SleepiestGuard(ts *Tallies) (Strategy, error) {
	return pick(ts, func(t *SleepTally) int { return t.TotalMinutes })
}

// SleepiestMinute picks the guard most frequently asleep on the same minute.
// Ties go to the guard seen first.
func SleepiestMinute(ts *Tallies) (Strategy, error) {
	return pick(ts, func(t *SleepTally) int {
		_, count := t.MostOftenAsleepMinute()
		return count
	})
}

func pick(ts *Tallies, score func(*SleepTally) int) (Strategy, error) {
	if ts == nil || ts.Len() == 0 {
		return Strategy{}, ErrNoGuards
	}

	best := ts.order[0]
	bestScore := score(ts.byID[best])
	for _, id := range ts.order[1:] {
		if s := score(ts.byID[id]); s > bestScore {
			best, bestScore = id, s
		}
	}

	minute, _ := ts.byID[best].MostOftenAsleepMinute()
	return Strategy{GuardID: best, Minute: minute}, nil
}
