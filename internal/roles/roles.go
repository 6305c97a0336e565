package roles

// Role - роль пользователя в системе
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleSuperAdmin Role = "super_admin"
)

// Elevated - проверяет, относится ли роль к административным.
// Набор ролей фиксированный, глобального изменяемого списка нет.
func Elevated(r Role) bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// Valid - проверяет, что роль из известного набора
func Valid(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator, RoleSuperAdmin:
		return true
	default:
		return false
	}
}
