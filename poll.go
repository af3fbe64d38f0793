package upd72020x

import "time"

// Every bounded poll of the handshake uses the same budget: about one second
// before giving up.
const (
	pollIterations = 100000
	pollInterval   = 10 * time.Microsecond
)

// poller runs bounded polls.
type poller struct {
	iterations int
	interval   time.Duration
	sleep      func(time.Duration)
}

func newPoller(sleep func(time.Duration)) poller {
	return poller{iterations: pollIterations, interval: pollInterval, sleep: sleep}
}

// until sleeps one interval and then evaluates done, at most p.iterations
// times. A done that returns an error counts as not done; the error is kept
// for the TimeoutError since reads may fail transiently while the controller
// changes state.
func (p poller) until(what string, done func() (bool, error)) error {
	var lastErr error
	for i := 0; i < p.iterations; i++ {
		p.sleep(p.interval)
		ok, err := done()
		if err != nil {
			lastErr = err
			continue
		}
		if ok {
			return nil
		}
	}
	return &TimeoutError{What: what, Polls: p.iterations, LastErr: lastErr}
}

// bitClear is a poll condition for a single control register bit reading 0.
func bitClear(cs *ConfigSpace, reg uint8, bit uint) func() (bool, error) {
	return func() (bool, error) {
		set, err := cs.ReadBit(reg, bit)
		return !set, err
	}
}
