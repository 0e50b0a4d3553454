package authservice

// Session данные административной сессии
type Session struct {
	AdminID   int64  `json:"admin_id"`
	AdminName string `json:"admin_name"`
	Role      string `json:"role"`
}
