package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-08-24 是周一，后续日期以此为锚点
var (
	monday  = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
	sunday  = monday.AddDate(0, 0, -1)
)

func workWeek(t *testing.T) *Schedule {
	t.Helper()
	s, err := NewStandardWeek([]int{1, 2, 3, 4, 5}, "09:00", "17:00", nil)
	require.NoError(t, err)
	return s
}

func TestIsOpenOnDay(t *testing.T) {
	s := workWeek(t)

	// 不变式：IsOpenOnDay 必须和每周计划逐项一致
	for d, day := range s.WeeklySchedule() {
		isOpen, err := s.IsOpenOnDay(d)
		require.NoError(t, err)
		assert.Equal(t, day.IsOpen, isOpen)
		if !day.IsOpen {
			assert.Empty(t, day.Slots)
		}
	}

	for _, d := range []int{-1, 7, 100} {
		_, err := s.IsOpenOnDay(d)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "day=%d", d)
		assert.Equal(t, KindRange, vErr.Kind)

		_, err = s.SlotsForDay(d)
		assert.Error(t, err)

		_, err = s.TotalOpenMinutesForDay(d)
		assert.Error(t, err)
	}
}

func TestSpecialDatePrecedence(t *testing.T) {
	t.Run("特殊歇业覆盖正常营业日", func(t *testing.T) {
		s, err := workWeek(t).WithSpecialDate(SpecialDate{
			Date:   monday,
			IsOpen: false,
			Reason: "设备检修",
		})
		require.NoError(t, err)

		// 每周计划依然认为周一营业，但具体到这个日期以覆盖为准
		isOpen, err := s.IsOpenOnDay(1)
		require.NoError(t, err)
		assert.True(t, isOpen)

		assert.False(t, s.IsOpenOnDate(monday))
		assert.Empty(t, s.SlotsForDate(monday))

		open, err := s.IsOpenAt(monday, "10:00")
		require.NoError(t, err)
		assert.False(t, open)

		// 同一周的其他日子不受影响
		assert.True(t, s.IsOpenOnDate(tuesday))
	})

	t.Run("特殊加开覆盖正常歇业日", func(t *testing.T) {
		s, err := workWeek(t).WithSpecialDate(SpecialDate{
			Date:   sunday,
			IsOpen: true,
			Slots:  []TimeSlot{mustSlot(t, "10:00", "14:00", "")},
			Reason: "周年庆",
		})
		require.NoError(t, err)

		assert.True(t, s.IsOpenOnDate(sunday))

		open, err := s.IsOpenAt(sunday, "11:00")
		require.NoError(t, err)
		assert.True(t, open)

		open, err = s.IsOpenAt(sunday, "14:00")
		require.NoError(t, err)
		assert.False(t, open)
	})

	t.Run("日期比较忽略时分秒", func(t *testing.T) {
		s, err := workWeek(t).WithSpecialDate(SpecialDate{
			Date:   time.Date(2026, 8, 24, 15, 30, 0, 0, time.UTC),
			IsOpen: false,
			Reason: "临时歇业",
		})
		require.NoError(t, err)

		assert.False(t, s.IsOpenOnDate(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)))
	})

	t.Run("同一日期多条覆盖时第一条生效", func(t *testing.T) {
		s, err := workWeek(t).WithSpecialDate(SpecialDate{
			Date:   monday,
			IsOpen: false,
			Reason: "第一条",
		})
		require.NoError(t, err)

		s, err = s.WithSpecialDate(SpecialDate{
			Date:   monday,
			IsOpen: true,
			Slots:  []TimeSlot{mustSlot(t, "10:00", "12:00", "")},
			Reason: "第二条",
		})
		require.NoError(t, err)

		require.Len(t, s.SpecialDates(), 2)
		assert.False(t, s.IsOpenOnDate(monday))
	})
}

func TestIsOpenAt(t *testing.T) {
	t.Run("结束时间不算营业", func(t *testing.T) {
		s := workWeek(t)

		open, err := s.IsOpenAt(monday, "17:00")
		require.NoError(t, err)
		assert.False(t, open)

		open, err = s.IsOpenAt(monday, "16:59")
		require.NoError(t, err)
		assert.True(t, open)

		open, err = s.IsOpenAt(monday, "09:00")
		require.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("多时段日在间隔中不营业", func(t *testing.T) {
		week := closedWeek()
		week[3] = OpenDay(3,
			mustSlot(t, "08:00", "12:00", ""),
			mustSlot(t, "14:00", "18:00", ""),
			mustSlot(t, "20:00", "22:00", ""),
		)
		s, err := New(week, nil, "")
		require.NoError(t, err)

		wednesday := monday.AddDate(0, 0, 2)

		cases := []struct {
			clock string
			want  bool
		}{
			{"13:00", false},
			{"16:00", true},
			{"23:00", false},
			{"08:00", true},
			{"12:00", false},
			{"20:00", true},
		}
		for _, c := range cases {
			open, err := s.IsOpenAt(wednesday, c.clock)
			require.NoError(t, err)
			assert.Equal(t, c.want, open, c.clock)
		}
	})

	t.Run("非法时间格式返回错误", func(t *testing.T) {
		_, err := workWeek(t).IsOpenAt(monday, "25:00")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindRange, vErr.Kind)
	})
}

func TestTotals(t *testing.T) {
	s, err := NewStandardWeek([]int{1, 2, 3}, "09:00", "18:00", &LunchBreak{Start: "12:00", End: "13:00"})
	require.NoError(t, err)

	// 每个营业日 3 小时 + 5 小时 = 480 分钟
	minutes, err := s.TotalOpenMinutesForDay(1)
	require.NoError(t, err)
	assert.Equal(t, 480, minutes)

	minutes, err = s.TotalOpenMinutesForDay(0)
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	assert.Equal(t, 1440, s.TotalOpenMinutesForWeek())

	// 平均值按固定的 7 天计算：1440 / 7 / 60 = 3.428... → 3.43
	assert.InDelta(t, 3.43, s.AverageOpenHoursPerDay(), 0.0001)

	assert.Equal(t, 0.0, NewAlwaysClosed().AverageOpenHoursPerDay())
}
