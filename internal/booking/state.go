package booking

import (
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

// State classifies bookings relative to "now" and/or their status for the
// two list surfaces. It is a query parameter, never persisted; WAITING and
// REJECTED coincide with Status values, the rest are temporal buckets.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps the raw query parameter to a State. An empty value
// defaults to ALL, matching the upstream gateway behavior.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	st := State(strings.ToUpper(raw))
	if _, ok := statePredicates[st]; !ok {
		return "", ErrInvalidState
	}
	return st, nil
}

// statePredicates maps each state to the filter it applies over the
// bookings table. Both the booker and the owner scope share this table;
// supporting a new state is a single entry here.
var statePredicates = map[State]func(now time.Time) squirrel.Sqlizer{
	StateAll: func(time.Time) squirrel.Sqlizer {
		return nil
	},
	StateCurrent: func(now time.Time) squirrel.Sqlizer {
		return squirrel.And{
			squirrel.LtOrEq{"b.start_date": now},
			squirrel.GtOrEq{"b.end_date": now},
		}
	},
	StatePast: func(now time.Time) squirrel.Sqlizer {
		return squirrel.Lt{"b.end_date": now}
	},
	StateFuture: func(now time.Time) squirrel.Sqlizer {
		return squirrel.Gt{"b.start_date": now}
	},
	StateWaiting: func(time.Time) squirrel.Sqlizer {
		return squirrel.Eq{"b.status": StatusWaiting}
	},
	StateRejected: func(time.Time) squirrel.Sqlizer {
		return squirrel.Eq{"b.status": StatusRejected}
	},
}

// Predicate returns the temporal/status filter for the state, or nil when
// the state applies no filter. Unknown states fall back to no filter; they
// are rejected earlier by ParseState.
func (s State) Predicate(now time.Time) squirrel.Sqlizer {
	if build, ok := statePredicates[s]; ok {
		return build(now)
	}
	return nil
}
