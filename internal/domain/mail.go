package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

// ScheduleChangedMailData 在商户营业时间被修改后发给店主，
// Summary 为引擎格式化出的完整营业时间文本
type ScheduleChangedMailData struct {
	FullName     string `json:"fullName"`
	BusinessName string `json:"businessName"`
	Summary      string `json:"summary"`
}
