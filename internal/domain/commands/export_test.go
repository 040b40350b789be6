package commands

import "time"

// SetClock replaces the clock used for branch names and titles.
func (it *UpdateCommand) SetClock(now func() time.Time) {
	it.now = now
}
