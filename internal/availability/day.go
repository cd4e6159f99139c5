package availability

// DaysPerWeek 固定为 7，整个引擎只支持以周为单位的循环计划
const DaysPerWeek = 7

// 星期名称查找表，下标和 DayOfWeek 一致（0 为周日），仅用于格式化输出
var dayNames = [DaysPerWeek]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// DayName 返回 0~6 对应的星期名称，超出范围时返回空字符串
func DayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek >= DaysPerWeek {
		return ""
	}
	return dayNames[dayOfWeek]
}

// DaySchedule 表示一周中某一天的营业安排。
// 不变式：不营业的日子不允许有任何时段，营业的日子必须至少有一个时段，
// 并且所有时段互不重叠。这些不变式由 Schedule 的构造统一校验
type DaySchedule struct {
	DayOfWeek int        `json:"dayOfWeek"`
	IsOpen    bool       `json:"isOpen"`
	Slots     []TimeSlot `json:"slots"`
}

// OpenDay 构造一个营业日
func OpenDay(dayOfWeek int, slots ...TimeSlot) DaySchedule {
	return DaySchedule{
		DayOfWeek: dayOfWeek,
		IsOpen:    true,
		Slots:     slots,
	}
}

// ClosedDay 构造一个不营业的日子
func ClosedDay(dayOfWeek int) DaySchedule {
	return DaySchedule{
		DayOfWeek: dayOfWeek,
		IsOpen:    false,
	}
}

// OpenMinutes 返回这一天所有时段的总时长（分钟），不营业的日子为 0
func (d DaySchedule) OpenMinutes() int {
	total := 0
	for _, slot := range d.Slots {
		total += slot.Minutes()
	}
	return total
}

func cloneWeek(week []DaySchedule) []DaySchedule {
	cloned := make([]DaySchedule, len(week))
	for i, day := range week {
		cloned[i] = DaySchedule{
			DayOfWeek: day.DayOfWeek,
			IsOpen:    day.IsOpen,
			Slots:     cloneSlots(day.Slots),
		}
	}
	return cloned
}
