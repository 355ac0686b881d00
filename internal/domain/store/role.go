package store

// ===============================
// User Roles
// ===============================

type Role string

const (
	RoleSystemAdmin Role = "system_admin"
	RoleNormalUser  Role = "normal_user"
	RoleStoreOwner  Role = "store_owner"
)

// ===============================
// Transitions
// ===============================

// DeriveRole computes the role a user must hold from their current owned-store
// count: at least one store makes them a store_owner, zero reverts them to
// normal_user. system_admin is assigned at provisioning time only and is never
// entered or exited through store events.
func DeriveRole(current Role, ownedStores int64) Role {
	if current == RoleSystemAdmin {
		return RoleSystemAdmin
	}
	if ownedStores > 0 {
		return RoleStoreOwner
	}
	return RoleNormalUser
}

// Assignable reports whether a role may be set directly when an admin creates
// an account. store_owner is derived state and is reached only by assigning a
// store.
func Assignable(r Role) bool {
	return r == RoleSystemAdmin || r == RoleNormalUser
}
