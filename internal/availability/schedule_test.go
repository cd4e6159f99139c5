package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustSlot 是测试用的便捷构造
func mustSlot(t *testing.T, start, end, name string) TimeSlot {
	t.Helper()
	slot, err := NewTimeSlot(start, end, name)
	require.NoError(t, err)
	return slot
}

// closedWeek 返回一个整周歇业的周计划，测试中按需改开某几天
func closedWeek() []DaySchedule {
	week := make([]DaySchedule, DaysPerWeek)
	for d := 0; d < DaysPerWeek; d++ {
		week[d] = ClosedDay(d)
	}
	return week
}

func TestNewValidation(t *testing.T) {
	t.Run("周计划长度必须为7", func(t *testing.T) {
		_, err := New(closedWeek()[:6], nil, "")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindStructural, vErr.Kind)
	})

	t.Run("星期序号必须和位置一致", func(t *testing.T) {
		week := closedWeek()
		week[2], week[3] = week[3], week[2]

		_, err := New(week, nil, "")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindStructural, vErr.Kind)
	})

	t.Run("不营业的日子不允许有时段", func(t *testing.T) {
		week := closedWeek()
		week[1].Slots = []TimeSlot{mustSlot(t, "09:00", "17:00", "")}

		_, err := New(week, nil, "")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindSlotShape, vErr.Kind)
	})

	t.Run("营业的日子必须至少有一个时段", func(t *testing.T) {
		week := closedWeek()
		week[1].IsOpen = true

		_, err := New(week, nil, "")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindSlotShape, vErr.Kind)
	})

	t.Run("手工构造的非法时段被拒绝", func(t *testing.T) {
		week := closedWeek()
		week[1] = OpenDay(1, TimeSlot{Start: 600, End: 540})

		_, err := New(week, nil, "")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindSlotShape, vErr.Kind)
	})

	t.Run("重叠时段被拒绝且错误信息点名两个时段", func(t *testing.T) {
		week := closedWeek()
		week[1] = OpenDay(1,
			mustSlot(t, "09:00", "13:00", ""),
			mustSlot(t, "12:00", "18:00", ""),
		)

		_, err := New(week, nil, "")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindOverlap, vErr.Kind)
		assert.Contains(t, vErr.Message, "09:00-13:00")
		assert.Contains(t, vErr.Message, "12:00-18:00")
	})

	t.Run("时段乱序提供时重叠检查依然生效", func(t *testing.T) {
		week := closedWeek()
		week[5] = OpenDay(5,
			mustSlot(t, "14:00", "18:00", ""),
			mustSlot(t, "09:00", "15:00", ""),
		)

		_, err := New(week, nil, "")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindOverlap, vErr.Kind)
	})

	t.Run("相邻但不重叠的时段是合法的", func(t *testing.T) {
		week := closedWeek()
		week[1] = OpenDay(1,
			mustSlot(t, "09:00", "12:00", ""),
			mustSlot(t, "12:00", "18:00", ""),
		)

		_, err := New(week, nil, "")
		assert.NoError(t, err)
	})

	t.Run("特殊日期的不变式和每周计划一致", func(t *testing.T) {
		date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

		// 营业却没有时段
		_, err := New(closedWeek(), []SpecialDate{{Date: date, IsOpen: true, Reason: "加开"}}, "")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindSlotShape, vErr.Kind)

		// 不营业却有时段
		_, err = New(closedWeek(), []SpecialDate{{
			Date:   date,
			IsOpen: false,
			Slots:  []TimeSlot{mustSlot(t, "09:00", "12:00", "")},
			Reason: "国庆节",
		}}, "")
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindSlotShape, vErr.Kind)

		// 时段重叠
		_, err = New(closedWeek(), []SpecialDate{{
			Date:   date,
			IsOpen: true,
			Slots: []TimeSlot{
				mustSlot(t, "09:00", "13:00", ""),
				mustSlot(t, "12:00", "18:00", ""),
			},
			Reason: "加开",
		}}, "")
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindOverlap, vErr.Kind)
	})

	t.Run("时区为空时使用默认时区", func(t *testing.T) {
		s, err := New(closedWeek(), nil, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultTimezone, s.Timezone())

		s, err = New(closedWeek(), nil, "Europe/Paris")
		require.NoError(t, err)
		assert.Equal(t, "Europe/Paris", s.Timezone())
	})

	t.Run("构造后修改输入切片不影响已构造的实例", func(t *testing.T) {
		week := closedWeek()
		week[1] = OpenDay(1, mustSlot(t, "09:00", "17:00", ""))

		s, err := New(week, nil, "")
		require.NoError(t, err)

		week[1].Slots[0].End, _ = ParseTimeOfDay("23:00")
		slots, err := s.SlotsForDay(1)
		require.NoError(t, err)
		assert.Equal(t, "17:00", slots[0].End.String())
	})
}

func TestNewStandardWeek(t *testing.T) {
	t.Run("周一到周五标准营业周", func(t *testing.T) {
		s, err := NewStandardWeek([]int{1, 2, 3, 4, 5}, "09:00", "17:00", nil)
		require.NoError(t, err)

		assert.Equal(t, 5, s.OpenDaysCount())
		assert.Equal(t, []int{1, 2, 3, 4, 5}, s.OpenDays())
		assert.Equal(t, []int{0, 6}, s.ClosedDays())
		assert.Equal(t, 2400, s.TotalOpenMinutesForWeek())
	})

	t.Run("带午休时拆分为上午和下午两个时段", func(t *testing.T) {
		s, err := NewStandardWeek([]int{1}, "09:00", "18:00", &LunchBreak{Start: "12:00", End: "13:00"})
		require.NoError(t, err)

		slots, err := s.SlotsForDay(1)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, mustSlot(t, "09:00", "12:00", "Morning"), slots[0])
		assert.Equal(t, mustSlot(t, "13:00", "18:00", "Afternoon"), slots[1])
	})

	t.Run("午休在营业时间之外时构造失败", func(t *testing.T) {
		_, err := NewStandardWeek([]int{1}, "09:00", "17:00", &LunchBreak{Start: "18:00", End: "19:00"})
		assert.Error(t, err)
	})

	t.Run("营业日超出范围时构造失败", func(t *testing.T) {
		_, err := NewStandardWeek([]int{7}, "09:00", "17:00", nil)
		assert.Error(t, err)
	})
}

func TestNewAlwaysClosed(t *testing.T) {
	s := NewAlwaysClosed()

	for d := 0; d < DaysPerWeek; d++ {
		isOpen, err := s.IsOpenOnDay(d)
		require.NoError(t, err)
		assert.False(t, isOpen)

		slots, err := s.SlotsForDay(d)
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
	assert.Equal(t, 0, s.OpenDaysCount())
	assert.Empty(t, s.SpecialDates())
}

func TestNew24Hours(t *testing.T) {
	s, err := New24Hours([]int{0, 6})
	require.NoError(t, err)

	slots, err := s.SlotsForDay(6)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "00:00", slots[0].Start.String())
	assert.Equal(t, "23:59", slots[0].End.String())
	assert.Equal(t, "24h", slots[0].Name)

	// 既有行为：按左闭右开的区间规则，一天的最后一分钟不算营业
	saturday := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	open, err := s.IsOpenAt(saturday, "23:59")
	require.NoError(t, err)
	assert.False(t, open)

	open, err = s.IsOpenAt(saturday, "23:58")
	require.NoError(t, err)
	assert.True(t, open)

	open, err = s.IsOpenAt(saturday, "00:00")
	require.NoError(t, err)
	assert.True(t, open)
}
