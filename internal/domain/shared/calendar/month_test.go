package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthKey(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		mk, err := ParseMonthKey("2026-02")
		require.NoError(t, err)
		assert.Equal(t, MonthKey{Year: 2026, Month: time.February}, mk)
		assert.Equal(t, "2026-02", mk.String())
	})

	t.Run("invalid", func(t *testing.T) {
		for _, s := range []string{"2026", "2026-13", "02-2026", "2026-2"} {
			_, err := ParseMonthKey(s)
			assert.Error(t, err, s)
		}
	})
}

func TestMonthKey_PrevNext(t *testing.T) {
	jan := MustParseMonthKey("2026-01")

	assert.Equal(t, MustParseMonthKey("2025-12"), jan.Prev())
	assert.Equal(t, MustParseMonthKey("2026-02"), jan.Next())
	assert.Equal(t, jan, jan.Prev().Next())
}

func TestMonthKey_Days(t *testing.T) {
	t.Run("february non-leap", func(t *testing.T) {
		days := MustParseMonthKey("2026-02").Days()
		require.Len(t, days, 28)
		assert.Equal(t, MustParseDate("2026-02-01"), days[0])
		assert.Equal(t, MustParseDate("2026-02-28"), days[27])
	})

	t.Run("february leap", func(t *testing.T) {
		assert.Len(t, MustParseMonthKey("2024-02").Days(), 29)
	})

	t.Run("thirty one days", func(t *testing.T) {
		assert.Len(t, MustParseMonthKey("2026-01").Days(), 31)
	})
}

func TestMonthKey_FirstLastDay(t *testing.T) {
	mk := MustParseMonthKey("2026-02")

	assert.Equal(t, MustParseDate("2026-02-01"), mk.FirstDay())
	assert.Equal(t, MustParseDate("2026-02-28"), mk.LastDay())
	assert.Equal(t, MustParseDate("2024-02-29"), MustParseMonthKey("2024-02").LastDay())
}

func TestMonthKey_Contains(t *testing.T) {
	mk := MustParseMonthKey("2026-02")

	assert.True(t, mk.Contains(MustParseDate("2026-02-01")))
	assert.True(t, mk.Contains(MustParseDate("2026-02-28")))
	assert.False(t, mk.Contains(MustParseDate("2026-03-01")))
	assert.False(t, mk.Contains(MustParseDate("2025-02-14")))
}

func TestMonthKey_Scan(t *testing.T) {
	var mk MonthKey

	require.NoError(t, mk.Scan("2026-02"))
	assert.Equal(t, MustParseMonthKey("2026-02"), mk)

	require.NoError(t, mk.Scan([]byte("2025-12")))
	assert.Equal(t, MustParseMonthKey("2025-12"), mk)

	require.NoError(t, mk.Scan(nil))
	assert.True(t, mk.IsZero())
}
