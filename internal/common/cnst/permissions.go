package cnst

// PermissionKey identifies a grantable permission. The set is closed: the
// authorization gate and every route declaration share these constants.
type PermissionKey string

const (
	// PermissionProductView allows reading products, artists and contribution types
	PermissionProductView PermissionKey = "product:view"
	// PermissionProductCreate allows creating products, artists and cover art
	PermissionProductCreate PermissionKey = "product:create"
	// PermissionProductEdit allows editing and deleting existing products
	PermissionProductEdit PermissionKey = "product:edit"
)

// AllPermissions lists every known permission key, used by the seed routine.
var AllPermissions = []PermissionKey{
	PermissionProductView,
	PermissionProductCreate,
	PermissionProductEdit,
}

// PermissionDescriptions maps permission keys to their seeded descriptions.
var PermissionDescriptions = map[PermissionKey]string{
	PermissionProductView:   "View products and related data",
	PermissionProductCreate: "Create new products",
	PermissionProductEdit:   "Edit and delete existing products",
}
