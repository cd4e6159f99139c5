package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSpecialDate(t *testing.T) {
	t.Run("追加后原实例不变", func(t *testing.T) {
		original := workWeek(t)

		updated, err := original.WithSpecialDate(SpecialDate{
			Date:   monday,
			IsOpen: false,
			Reason: "临时歇业",
		})
		require.NoError(t, err)

		assert.Empty(t, original.SpecialDates())
		assert.Len(t, updated.SpecialDates(), 1)
		assert.True(t, original.IsOpenOnDate(monday))
		assert.False(t, updated.IsOpenOnDate(monday))
	})

	t.Run("非法条目导致整个变更失败", func(t *testing.T) {
		_, err := workWeek(t).WithSpecialDate(SpecialDate{
			Date:   monday,
			IsOpen: true,
			Reason: "没有时段的加开",
		})
		assert.Error(t, err)
	})
}

func TestWithoutSpecialDate(t *testing.T) {
	t.Run("添加再移除后数量回到原样", func(t *testing.T) {
		original := workWeek(t)
		sd := SpecialDate{Date: monday, IsOpen: false, Reason: "临时歇业"}

		added, err := original.WithSpecialDate(sd)
		require.NoError(t, err)

		removed, err := added.WithoutSpecialDate(sd.Date)
		require.NoError(t, err)

		assert.Len(t, removed.SpecialDates(), len(original.SpecialDates()))
		assert.True(t, removed.IsOpenOnDate(monday))
	})

	t.Run("移除同一日期的全部条目", func(t *testing.T) {
		s, err := workWeek(t).WithSpecialDate(SpecialDate{Date: monday, IsOpen: false, Reason: "一"})
		require.NoError(t, err)
		s, err = s.WithSpecialDate(SpecialDate{Date: monday, IsOpen: false, Reason: "二"})
		require.NoError(t, err)
		s, err = s.WithSpecialDate(SpecialDate{Date: tuesday, IsOpen: false, Reason: "三"})
		require.NoError(t, err)

		s, err = s.WithoutSpecialDate(monday)
		require.NoError(t, err)

		specials := s.SpecialDates()
		require.Len(t, specials, 1)
		assert.Equal(t, "三", specials[0].Reason)
	})

	t.Run("不存在匹配条目时等价于复制", func(t *testing.T) {
		original := workWeek(t)
		copied, err := original.WithoutSpecialDate(monday)
		require.NoError(t, err)
		assert.Empty(t, copied.SpecialDates())
	})
}

func TestWithUpdatedDay(t *testing.T) {
	t.Run("只有新实例反映更新", func(t *testing.T) {
		original := workWeek(t)

		updated, err := original.WithUpdatedDay(6, true, []TimeSlot{mustSlot(t, "10:00", "14:00", "")})
		require.NoError(t, err)

		wasOpen, err := original.IsOpenOnDay(6)
		require.NoError(t, err)
		assert.False(t, wasOpen)

		isOpen, err := updated.IsOpenOnDay(6)
		require.NoError(t, err)
		assert.True(t, isOpen)

		// 其余日子原样保留
		assert.Equal(t, original.OpenDays(), updated.OpenDays()[:5])
	})

	t.Run("更新引入的不变式破坏被拦截", func(t *testing.T) {
		_, err := workWeek(t).WithUpdatedDay(1, true, nil)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindSlotShape, vErr.Kind)

		_, err = workWeek(t).WithUpdatedDay(1, true, []TimeSlot{
			mustSlot(t, "09:00", "13:00", ""),
			mustSlot(t, "12:00", "18:00", ""),
		})
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindOverlap, vErr.Kind)
	})

	t.Run("星期序号超出范围", func(t *testing.T) {
		_, err := workWeek(t).WithUpdatedDay(7, false, nil)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindRange, vErr.Kind)
	})
}
