package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindNextOpening(t *testing.T) {
	t.Run("当天还有未开始的时段", func(t *testing.T) {
		week := closedWeek()
		week[1] = OpenDay(1,
			mustSlot(t, "09:00", "12:00", ""),
			mustSlot(t, "14:00", "18:00", ""),
		)
		s, err := New(week, nil, "")
		require.NoError(t, err)

		// 周一 10:00，上午时段已经开始，不能被报告
		from := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
		next, ok := s.FindNextOpening(from)
		require.True(t, ok)
		assert.Equal(t, "14:00", next.Slot.Start.String())
		assert.Equal(t, monday.Day(), next.Date.Day())
	})

	t.Run("恰好在时段开始时刻不报告该时段", func(t *testing.T) {
		s := workWeek(t)

		// 周一 09:00 整，当天 09:00-17:00 已开始，下一次开门是周二
		from := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
		next, ok := s.FindNextOpening(from)
		require.True(t, ok)
		assert.Equal(t, time.Tuesday, next.Date.Weekday())
		assert.Equal(t, "09:00", next.Slot.Start.String())
	})

	t.Run("当天已无时段时跳到下一个营业日", func(t *testing.T) {
		s := workWeek(t)

		// 周五 18:00，周末歇业，下一次开门是下周一
		friday := time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC)
		next, ok := s.FindNextOpening(friday)
		require.True(t, ok)
		assert.Equal(t, time.Monday, next.Date.Weekday())
		assert.Equal(t, "09:00", next.Slot.Start.String())
	})

	t.Run("特殊歇业使查找跳过该日", func(t *testing.T) {
		s, err := workWeek(t).WithSpecialDate(SpecialDate{
			Date:   tuesday,
			IsOpen: false,
			Reason: "设备检修",
		})
		require.NoError(t, err)

		// 周一 20:00，周二被覆盖为歇业，下一次开门是周三
		from := time.Date(2026, 8, 24, 20, 0, 0, 0, time.UTC)
		next, ok := s.FindNextOpening(from)
		require.True(t, ok)
		assert.Equal(t, time.Wednesday, next.Date.Weekday())
	})

	t.Run("特殊加开的歇业日可以被找到", func(t *testing.T) {
		s, err := NewAlwaysClosed().WithSpecialDate(SpecialDate{
			Date:   sunday.AddDate(0, 0, 7),
			IsOpen: true,
			Slots:  []TimeSlot{mustSlot(t, "10:00", "14:00", "")},
			Reason: "周年庆",
		})
		require.NoError(t, err)

		// 周一出发，7 天内只有下周日被临时加开
		from := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
		next, ok := s.FindNextOpening(from)
		require.True(t, ok)
		assert.Equal(t, time.Sunday, next.Date.Weekday())
		assert.Equal(t, "10:00", next.Slot.Start.String())
	})

	t.Run("整周歇业时没有结果", func(t *testing.T) {
		s := NewAlwaysClosed()

		for _, from := range []time.Time{
			time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC),
		} {
			_, ok := s.FindNextOpening(from)
			assert.False(t, ok)
		}
	})

	t.Run("查找范围固定为7天", func(t *testing.T) {
		// 第 8 天有一条加开覆盖，但它在查找范围之外
		s, err := NewAlwaysClosed().WithSpecialDate(SpecialDate{
			Date:   monday.AddDate(0, 0, 8),
			IsOpen: true,
			Slots:  []TimeSlot{mustSlot(t, "09:00", "12:00", "")},
			Reason: "范围之外",
		})
		require.NoError(t, err)

		_, ok := s.FindNextOpening(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
		assert.False(t, ok)
	})
}
