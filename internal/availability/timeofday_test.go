package availability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Run("合法输入", func(t *testing.T) {
		cases := []struct {
			input string
			want  TimeOfDay
		}{
			{"00:00", 0},
			{"9:05", 9*60 + 5},
			{"09:05", 9*60 + 5},
			{"12:30", 12*60 + 30},
			{"23:59", 23*60 + 59},
		}

		for _, c := range cases {
			got, err := ParseTimeOfDay(c.input)
			require.NoError(t, err, c.input)
			assert.Equal(t, c.want, got, c.input)
		}
	})

	t.Run("非法输入必须报错而不是静默回退", func(t *testing.T) {
		inputs := []string{"", "24:00", "12:60", "9am", "12", "12:5", "12:305", "ab:cd", "-1:00", "12:30:00"}

		for _, input := range inputs {
			_, err := ParseTimeOfDay(input)
			assert.Error(t, err, input)
		}
	})
}

func TestTimeOfDayString(t *testing.T) {
	// 无论输入是 H:MM 还是 HH:MM，序列化回字符串时统一为 HH:MM
	parsed, err := ParseTimeOfDay("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", parsed.String())
	assert.Equal(t, 9, parsed.Hour())
	assert.Equal(t, 5, parsed.Minute())
}

func TestTimeOfDayJSON(t *testing.T) {
	slot, err := NewTimeSlot("09:00", "17:30", "")
	require.NoError(t, err)

	data, err := json.Marshal(slot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"startTime":"09:00","endTime":"17:30"}`, string(data))

	var decoded TimeSlot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, slot, decoded)

	var bad TimeSlot
	assert.Error(t, json.Unmarshal([]byte(`{"startTime":"25:00","endTime":"17:30"}`), &bad))
}
