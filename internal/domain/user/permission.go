package user

type Permission string

const (
	// Self service
	PermissionViewOwnProfile    Permission = "profile.view_own"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"

	// Team
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionReportsExport     Permission = "reports.export"
	PermissionLiveFeed          Permission = "attendance.live_feed"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionReportsExport,
		PermissionLiveFeed,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
