package availability

import "time"

// WithSpecialDate 返回一个追加了 sd 的新营业时间表，原实例不受影响。
// 新条目会经过完整校验。这里刻意不做按日期去重：
// 同一日期允许存在多条覆盖，查询时以列表顺序的第一条为准，
// 需要"后添加的生效"语义的调用方应当先调用 WithoutSpecialDate
func (s *Schedule) WithSpecialDate(sd SpecialDate) (*Schedule, error) {
	specials := append(cloneSpecialDates(s.specials), sd)
	return New(s.week, specials, s.timezone)
}

// WithoutSpecialDate 返回一个移除了 date 所在日历日全部覆盖的新营业时间表。
// date 的时分秒部分被忽略；不存在匹配条目时等价于复制自身
func (s *Schedule) WithoutSpecialDate(date time.Time) (*Schedule, error) {
	kept := make([]SpecialDate, 0, len(s.specials))
	for _, sd := range s.specials {
		if !sd.SameDate(date) {
			kept = append(kept, sd)
		}
	}
	return New(s.week, kept, s.timezone)
}

// WithUpdatedDay 返回一个替换了 dayOfWeek 这一天营业安排的新营业时间表。
// 整个聚合会被重新校验，因此诸如"营业却没有时段"之类由本次更新引入的
// 不变式破坏会在这里被拦截
func (s *Schedule) WithUpdatedDay(dayOfWeek int, isOpen bool, slots []TimeSlot) (*Schedule, error) {
	if dayOfWeek < 0 || dayOfWeek >= DaysPerWeek {
		return nil, newValidationError(KindRange, "星期序号 %d 超出 0~6 的范围", dayOfWeek)
	}

	week := cloneWeek(s.week)
	week[dayOfWeek] = DaySchedule{
		DayOfWeek: dayOfWeek,
		IsOpen:    isOpen,
		Slots:     cloneSlots(slots),
	}

	return New(week, s.specials, s.timezone)
}
