package model

import "strings"

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

const (
	RoleAdmin          = "ADMIN"
	RoleInventoryClerk = "INVENTORY_CLERK"
	RoleViewer         = "VIEWER"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Full system access with all privileges",
	},
	{
		Code:        RoleInventoryClerk,
		Name:        "Inventory Clerk",
		Description: "Manages catalog, stock and issuances",
	},
	{
		Code:        RoleViewer,
		Name:        "Viewer",
		Description: "Read-only access to inventory",
	},
}

// RoleGrants reports whether a role receives a privilege when seeding.
func RoleGrants(roleCode, privilegeCode string) bool {
	switch roleCode {
	case RoleAdmin:
		return true
	case RoleInventoryClerk:
		return !strings.HasPrefix(privilegeCode, "user:")
	case RoleViewer:
		return strings.HasSuffix(privilegeCode, ":view") && privilegeCode != PrivUserView
	default:
		return false
	}
}
