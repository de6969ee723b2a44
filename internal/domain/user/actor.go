package user

// Actor 发起请求的身份（由鉴权中间件写入上下文）
// 资源级授权统一使用 {admin} ∪ {owner} 规则
type Actor struct {
	ID   uint
	Role Role
}

// IsAdmin 是否管理员
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess 管理员或资源所有者可访问
func (a Actor) CanAccess(ownerID uint) bool {
	return a.IsAdmin() || (a.ID != 0 && a.ID == ownerID)
}

// Authorize CanAccess的错误形式
func (a Actor) Authorize(ownerID uint) error {
	if !a.CanAccess(ownerID) {
		return ErrAccessDenied
	}
	return nil
}
