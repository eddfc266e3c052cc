package contract

import "time"

// Clock abstracts the current time so window logic can be tested
// without waiting on a real timer.
type Clock interface {
	Now() time.Time
}
