package domain

import "time"

// Business 表示入驻平台的一家商户。
// 营业时间表不内嵌在这里：它由 repository 单独加载和保存，
// 商户记录只持有对当前营业时间表的所有权
type Business struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   int64     `json:"ownerID"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
