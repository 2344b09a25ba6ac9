package signal

// TimerState is the cell for Every.
type TimerState struct {
	LastPulse uint32
}

// Every fires at most once per interval window of the millisecond clock,
// carrying the time at which it fired. An interval of zero fires on every
// new millisecond.
func Every(interval uint32, cell *TimerState, now uint32) Signal[uint32] {
	window := now
	if interval != 0 {
		window = now / interval * interval
	}
	if cell.LastPulse >= window {
		return Empty[uint32]()
	}
	cell.LastPulse = now
	return Of(now)
}
