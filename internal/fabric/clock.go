package fabric

import "time"

// Clock abstracts time so token expiry can be tested without waiting.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
