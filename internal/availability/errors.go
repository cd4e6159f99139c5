package availability

import "fmt"

// ErrorKind 对校验错误进行分类，方便上层按类别决定如何呈现
type ErrorKind string

const (
	KindStructural ErrorKind = "structural" // 周计划长度错误、星期序号和位置不匹配
	KindSlotShape  ErrorKind = "slot_shape" // 时段格式错误、起止顺序错误、营业标记和时段不一致
	KindOverlap    ErrorKind = "overlap"    // 同一天内的两个时段相互重叠
	KindRange      ErrorKind = "range"      // 查询参数超出合法的取值范围
)

// ValidationError 表示营业时间表的校验错误，
// Message 是可以直接展示给用户的中文描述。
// 本包中不存在可重试的错误类别，所有错误都意味着输入本身不合法
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(kind ErrorKind, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
