package task

import "time"

// KeySource issues task keys. Keys are creation times in Unix milliseconds,
// bumped forward when the clock has not advanced so no key is issued twice.
type KeySource struct {
	now  func() time.Time
	last Key
}

// NewKeySource returns a KeySource reading the wall clock.
func NewKeySource() *KeySource {
	return &KeySource{now: time.Now}
}

// NewKeySourceWithClock returns a KeySource reading now (for testing).
func NewKeySourceWithClock(now func() time.Time) *KeySource {
	return &KeySource{now: now}
}

// Next returns a key greater than every key issued so far and every key in s.
func (ks *KeySource) Next(s State) Key {
	k := Key(ks.now().UnixMilli())
	if k <= ks.last {
		k = ks.last + 1
	}
	for _, list := range [][]Task{s.Pending, s.Completed} {
		for _, t := range list {
			if k <= t.Key {
				k = t.Key + 1
			}
		}
	}
	ks.last = k
	return k
}
