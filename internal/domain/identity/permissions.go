package identity

// Permission codes recognized by the admin API. Roles may carry any
// code matching the resource:action pattern, but route gating only
// checks the codes listed here.
const (
	PermCatalogRead   = "catalog:read"
	PermCatalogManage = "catalog:manage"

	PermProductRead   = "product:read"
	PermProductCreate = "product:create"
	PermProductUpdate = "product:update"
	PermProductDelete = "product:delete"

	PermOrderRead   = "order:read"
	PermOrderManage = "order:manage"

	PermCustomerRead   = "customer:read"
	PermCustomerManage = "customer:manage"

	PermUserRead   = "user:read"
	PermUserManage = "user:manage"

	PermRoleRead   = "role:read"
	PermRoleManage = "role:manage"

	PermAPIKeyManage = "apikey:manage"

	PermAlertRead   = "alert:read"
	PermAlertManage = "alert:manage"
)

// KnownPermissions lists every code route gating understands,
// for role editors to offer as choices.
func KnownPermissions() []string {
	return []string{
		PermCatalogRead,
		PermCatalogManage,
		PermProductRead,
		PermProductCreate,
		PermProductUpdate,
		PermProductDelete,
		PermOrderRead,
		PermOrderManage,
		PermCustomerRead,
		PermCustomerManage,
		PermUserRead,
		PermUserManage,
		PermRoleRead,
		PermRoleManage,
		PermAPIKeyManage,
		PermAlertRead,
		PermAlertManage,
	}
}
