package contracts

import "github.com/ethereum/go-ethereum/crypto"

// AccessControl role identifiers on the registry contract. The admin role is
// the zero hash by convention; the rest are keccak256 of the role name.
var (
	DefaultAdminRole    = [32]byte{}
	PropertyManagerRole = RoleID("PROPERTY_MANAGER_ROLE")
	VerifierRole        = RoleID("VERIFIER_ROLE")
)

// RoleID computes the on-chain identifier for a named role.
func RoleID(name string) [32]byte {
	if name == "" || name == "DEFAULT_ADMIN_ROLE" {
		return [32]byte{}
	}
	return [32]byte(crypto.Keccak256Hash([]byte(name)))
}

// KnownRole resolves the role names accepted by the admin surface.
func KnownRole(name string) ([32]byte, bool) {
	switch name {
	case "DEFAULT_ADMIN_ROLE", "PROPERTY_MANAGER_ROLE", "VERIFIER_ROLE":
		return RoleID(name), true
	default:
		return [32]byte{}, false
	}
}
