package entities

// Permission representa uma permissão específica derivada das flags do perfil
type Permission string

const (
	PermissionContentCreate   Permission = "content.create"
	PermissionEventsManage    Permission = "events.manage"
	PermissionForumModerate   Permission = "forum.moderate"
	PermissionAlertsManage    Permission = "alerts.manage"
	PermissionDirectoryManage Permission = "directory.manage"
	PermissionReportsHandle   Permission = "reports.handle"
	PermissionUsersManage     Permission = "users.manage"
)

// AllPermissions lista todas as permissões conhecidas
var AllPermissions = []Permission{
	PermissionContentCreate,
	PermissionEventsManage,
	PermissionForumModerate,
	PermissionAlertsManage,
	PermissionDirectoryManage,
	PermissionReportsHandle,
	PermissionUsersManage,
}

// AdminPermissions são as permissões que dão acesso ao painel administrativo
var AdminPermissions = []Permission{
	PermissionEventsManage,
	PermissionForumModerate,
	PermissionAlertsManage,
	PermissionDirectoryManage,
	PermissionReportsHandle,
	PermissionUsersManage,
}

// Flags agrupa as flags de permissão armazenadas no perfil
type Flags struct {
	IsSuperAdmin   bool
	AdminEvents    bool
	ForumModerator bool
	AdminAlerts    bool
	AdminDirectory bool
}

// Grants verifica se as flags concedem a permissão
func (f Flags) Grants(p Permission) bool {
	if f.IsSuperAdmin {
		return true
	}
	switch p {
	case PermissionContentCreate:
		return true
	case PermissionEventsManage:
		return f.AdminEvents
	case PermissionForumModerate, PermissionReportsHandle:
		return f.ForumModerator
	case PermissionAlertsManage:
		return f.AdminAlerts
	case PermissionDirectoryManage:
		return f.AdminDirectory
	default:
		return false
	}
}
