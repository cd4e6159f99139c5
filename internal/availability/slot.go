package availability

import (
	"fmt"
	"slices"
)

// TimeSlot 表示一天内的一个营业时段。
// 区间是左闭右开的 [Start, End)：18:00 结束的时段在 18:00 这一分钟已经不营业。
// Name 可选，用于标记诸如 "Morning" / "Afternoon" 之类的时段名称
type TimeSlot struct {
	Start TimeOfDay `json:"startTime"`
	End   TimeOfDay `json:"endTime"`
	Name  string    `json:"name,omitempty"`
}

// NewTimeSlot 从 HH:MM 字符串构造一个时段，开始时间必须严格早于结束时间。
// 零长度时段和跨午夜时段都会被拒绝
func NewTimeSlot(start string, end string, name string) (TimeSlot, error) {
	startTime, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeSlot{}, newValidationError(KindSlotShape, "时段的开始%s", err)
	}

	endTime, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeSlot{}, newValidationError(KindSlotShape, "时段的结束%s", err)
	}

	if startTime >= endTime {
		return TimeSlot{}, newValidationError(KindSlotShape, "时段 %s-%s 的开始时间必须严格早于结束时间", startTime, endTime)
	}

	return TimeSlot{
		Start: startTime,
		End:   endTime,
		Name:  name,
	}, nil
}

// Contains 判断 t 是否落在时段内，结束时间本身不算在内
func (s TimeSlot) Contains(t TimeOfDay) bool {
	return t >= s.Start && t < s.End
}

// Minutes 返回时段的时长（分钟）
func (s TimeSlot) Minutes() int {
	return int(s.End - s.Start)
}

func (s TimeSlot) String() string {
	if s.Name == "" {
		return fmt.Sprintf("%s-%s", s.Start, s.End)
	}
	return fmt.Sprintf("%s-%s (%s)", s.Start, s.End, s.Name)
}

// validateSlots 检查一组时段是否都合法且互不重叠，subject 用于错误信息中指明归属。
// 检查顺序：先逐个检查时段形状，再按开始时间排序后扫描相邻时段判断重叠。
// 排序只发生在这里的副本上，原始的时段顺序不会被改变
func validateSlots(subject string, slots []TimeSlot) error {
	for _, slot := range slots {
		if slot.Start < 0 || slot.Start > maxMinuteOfDay || slot.End < 0 || slot.End > maxMinuteOfDay {
			return newValidationError(KindSlotShape, "%s的时段 %s-%s 超出了一天的范围", subject, slot.Start, slot.End)
		}
		if slot.Start >= slot.End {
			return newValidationError(KindSlotShape, "%s的时段 %s-%s 的开始时间必须严格早于结束时间", subject, slot.Start, slot.End)
		}
	}

	sorted := slices.Clone(slots)
	slices.SortStableFunc(sorted, func(a, b TimeSlot) int {
		return int(a.Start - b.Start)
	})

	for i := 0; i+1 < len(sorted); i++ {
		if sorted[i].End > sorted[i+1].Start {
			return newValidationError(KindOverlap, "%s的时段 %s-%s 和 %s-%s 相互重叠",
				subject, sorted[i].Start, sorted[i].End, sorted[i+1].Start, sorted[i+1].End)
		}
	}

	return nil
}

func cloneSlots(slots []TimeSlot) []TimeSlot {
	if slots == nil {
		return nil
	}
	return slices.Clone(slots)
}
