package ports

import "time"

// Clock abstracts wall-clock access so time-window logic can be tested
// without real waits.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
