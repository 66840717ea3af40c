package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		raw  string
		want State
	}{
		{"", StateAll},
		{"ALL", StateAll},
		{"all", StateAll},
		{"Current", StateCurrent},
		{"PAST", StatePast},
		{"future", StateFuture},
		{"waiting", StateWaiting},
		{"REJECTED", StateRejected},
	}
	for _, tt := range tests {
		st, err := ParseState(tt.raw)
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, st, "raw=%q", tt.raw)
	}
}

func TestParseStateRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"APPROVED", "current ", "bogus", "ALL "} {
		_, err := ParseState(raw)
		assert.ErrorIs(t, err, ErrInvalidState, "raw=%q", raw)
	}
}

func TestStatePredicateSQL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Nil(t, StateAll.Predicate(now))

	tests := []struct {
		state State
		sql   string
		args  []any
	}{
		{StateCurrent, "(b.start_date <= ? AND b.end_date >= ?)", []any{now, now}},
		{StatePast, "b.end_date < ?", []any{now}},
		{StateFuture, "b.start_date > ?", []any{now}},
		{StateWaiting, "b.status = ?", []any{StatusWaiting}},
		{StateRejected, "b.status = ?", []any{StatusRejected}},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			pred := tt.state.Predicate(now)
			require.NotNil(t, pred)

			sql, args, err := pred.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sql)
			assert.Equal(t, tt.args, args)
		})
	}
}
