// Package naming derives the names of fabric objects from the cluster
// system identifier. All objects provisioned for a cluster follow these
// fixed suffixing conventions so they can be identified and removed
// together.
package naming

func Tenant(systemID string) string {
	return systemID
}

func PhysicalDomain(systemID string) string {
	return systemID + "-pdom"
}

func VLANPool(systemID string) string {
	return systemID + "-pool"
}

func MulticastPool(systemID string) string {
	return systemID + "-mpool"
}

func VMMDomain(systemID string) string {
	return systemID
}

func VMMController(systemID string) string {
	return systemID
}

func FabricLogin(systemID string) string {
	return systemID
}
