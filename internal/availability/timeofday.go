package availability

import (
	"fmt"
	"regexp"
	"strconv"
)

// TimeOfDay 表示一天中的某个时刻，内部以自午夜起的分钟数保存，
// 取值范围为 [0, 1439]，对外序列化时统一使用 HH:MM 格式
type TimeOfDay int

// 一天中最后一个合法的分钟数，即 23:59
const maxMinuteOfDay = 24*60 - 1

// 允许 H:MM 和 HH:MM 两种写法，小时 0~23，分钟 0~59
var timeOfDayPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTimeOfDay 将 H:MM / HH:MM 格式的字符串解析为 TimeOfDay，
// 不符合格式的输入一律返回错误，绝不做默认值替换
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("时间 %q 不符合 HH:MM 格式", s)
	}

	// 正则已经保证了这里一定是合法的数字
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	return TimeOfDay(hour*60 + minute), nil
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalJSON 让 TimeOfDay 在 JSON 中始终表现为 HH:MM 字符串，
// 分钟数只是内部表示，不允许泄漏到任何持久化或传输格式中
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("时间必须是 HH:MM 格式的字符串")
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
