package availability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDay(t *testing.T) {
	s, err := NewStandardWeek([]int{1}, "09:00", "18:00", &LunchBreak{Start: "12:00", End: "13:00"})
	require.NoError(t, err)

	line, err := s.FormatDay(1)
	require.NoError(t, err)
	assert.Equal(t, "周一: 09:00-12:00 (Morning), 13:00-18:00 (Afternoon)", line)

	line, err = s.FormatDay(0)
	require.NoError(t, err)
	assert.Equal(t, "周日: 不营业", line)

	_, err = s.FormatDay(7)
	assert.Error(t, err)
}

func TestFormatWeek(t *testing.T) {
	s := workWeek(t)

	lines := strings.Split(s.FormatWeek(), "\n")
	require.Len(t, lines, DaysPerWeek)
	assert.Equal(t, "周日: 不营业", lines[0])
	assert.Equal(t, "周一: 09:00-17:00", lines[1])
	assert.Equal(t, "周六: 不营业", lines[6])
}

func TestFormatSpecialDates(t *testing.T) {
	assert.Equal(t, "无特殊日期", workWeek(t).FormatSpecialDates())

	s, err := workWeek(t).WithSpecialDate(SpecialDate{
		Date:   monday,
		IsOpen: false,
		Reason: "设备检修",
	})
	require.NoError(t, err)
	s, err = s.WithSpecialDate(SpecialDate{
		Date:   tuesday,
		IsOpen: true,
		Slots:  []TimeSlot{mustSlot(t, "10:00", "14:00", "")},
		Reason: "",
	})
	require.NoError(t, err)

	lines := strings.Split(s.FormatSpecialDates(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2026-08-24: 不营业（设备检修）", lines[0])
	assert.Equal(t, "2026-08-25: 10:00-14:00", lines[1])
}

func TestScheduleString(t *testing.T) {
	text := workWeek(t).String()

	assert.Contains(t, text, DefaultTimezone)
	assert.Contains(t, text, "周一: 09:00-17:00")
	assert.Contains(t, text, "无特殊日期")
}
