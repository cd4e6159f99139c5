package utils

import (
	"regexp"
	"testing"

	"github.com/mercato-dev/business-hours/backend/internal/availability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	t.Run("汉字转成拼音", func(t *testing.T) {
		assert.Equal(t, "lao-wang-mian-guan", Slugify("老王面馆"))
	})

	t.Run("字母数字保留并转小写", func(t *testing.T) {
		assert.Equal(t, "cafe42", Slugify("Cafe42"))
	})

	t.Run("混合内容", func(t *testing.T) {
		assert.Equal(t, "lao-wang-cafe", Slugify("老王 Cafe"))
	})

	t.Run("标点折叠成连字符", func(t *testing.T) {
		assert.Equal(t, "a-b", Slugify("a  &  b"))
	})

	t.Run("首尾不带连字符", func(t *testing.T) {
		assert.Equal(t, "mian-guan", Slugify("（面馆）"))
	})
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), GenerateRandomOTP())
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	assert.Len(t, GenerateRandomPassword(12), 12)
}

func TestGenerateRandomSchedule(t *testing.T) {
	// 生成的结果必须总是能通过引擎的构造校验
	for i := 0; i < 50; i++ {
		schedule, err := GenerateRandomSchedule()
		require.NoError(t, err)
		require.NotNil(t, schedule)
		assert.Len(t, schedule.WeeklySchedule(), availability.DaysPerWeek)
	}
}

func TestGenerateRandomSpecialDates(t *testing.T) {
	for i := 0; i < 20; i++ {
		for _, sd := range GenerateRandomSpecialDates() {
			if sd.IsOpen {
				assert.NotEmpty(t, sd.Slots)
			} else {
				assert.Empty(t, sd.Slots)
			}
			assert.NotEmpty(t, sd.Reason)
		}
	}
}
