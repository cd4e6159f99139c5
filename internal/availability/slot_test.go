package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeSlot(t *testing.T) {
	t.Run("正常构造", func(t *testing.T) {
		slot, err := NewTimeSlot("09:00", "17:00", "白班")
		require.NoError(t, err)
		assert.Equal(t, "09:00", slot.Start.String())
		assert.Equal(t, "17:00", slot.End.String())
		assert.Equal(t, 480, slot.Minutes())
	})

	t.Run("开始时间必须严格早于结束时间", func(t *testing.T) {
		_, err := NewTimeSlot("09:00", "09:00", "")
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, KindSlotShape, vErr.Kind)
	})

	t.Run("跨午夜的时段被拒绝", func(t *testing.T) {
		_, err := NewTimeSlot("22:00", "02:00", "")
		assert.Error(t, err)
	})

	t.Run("格式非法的时间被拒绝", func(t *testing.T) {
		_, err := NewTimeSlot("9am", "17:00", "")
		assert.Error(t, err)

		_, err = NewTimeSlot("09:00", "25:00", "")
		assert.Error(t, err)
	})
}

func TestTimeSlotContains(t *testing.T) {
	slot, err := NewTimeSlot("09:00", "17:00", "")
	require.NoError(t, err)

	// 左闭右开：包含开始分钟，不包含结束分钟
	start, _ := ParseTimeOfDay("09:00")
	beforeEnd, _ := ParseTimeOfDay("16:59")
	end, _ := ParseTimeOfDay("17:00")
	before, _ := ParseTimeOfDay("08:59")

	assert.True(t, slot.Contains(start))
	assert.True(t, slot.Contains(beforeEnd))
	assert.False(t, slot.Contains(end))
	assert.False(t, slot.Contains(before))
}

func TestTimeSlotString(t *testing.T) {
	unnamed, err := NewTimeSlot("08:00", "12:00", "")
	require.NoError(t, err)
	assert.Equal(t, "08:00-12:00", unnamed.String())

	named, err := NewTimeSlot("08:00", "12:00", "Morning")
	require.NoError(t, err)
	assert.Equal(t, "08:00-12:00 (Morning)", named.String())
}
