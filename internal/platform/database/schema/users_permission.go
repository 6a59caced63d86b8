package schema

// UserPermissionTable represents the 'users.permission' table
type UserPermissionTable struct {
	Table      string
	AccountID  string
	Permission string
	GrantedAt  string
}

// UserPermission is the schema definition for users.permission
var UserPermission = UserPermissionTable{
	Table:      "users.permission",
	AccountID:  "accountid",
	Permission: "permission",
	GrantedAt:  "grantedat",
}
