package model

// SheetRole 工作表在工作簿中的角色
type SheetRole string

const (
	SheetRoleMember   SheetRole = "member"   // 成员表
	SheetRoleReserved SheetRole = "reserved" // 固定表（まとめ/記入例/...）
	SheetRoleRate     SheetRole = "rate"     // 単価表
)

// SheetWarning 单个 sheet 处理失败时的告警（该 sheet 被跳过）
type SheetWarning struct {
	Sheet   string `json:"sheet"`
	Message string `json:"message"`
}

// SheetStatus 记录每个 sheet 的处理结果
type SheetStatus struct {
	Sheet  string    `json:"sheet"`
	Role   SheetRole `json:"role"`
	Status string    `json:"status"` // processed/skipped/error
	Error  string    `json:"error,omitempty"`
}
