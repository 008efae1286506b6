package authz

import "fmt"

// RoleSeed describes one built-in role and the routes it may hit.
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds are the roles provisioned on startup. Admin owns the
// whole management surface; the customer role covers the storefront routes
// that require a signed-in account.
var BuiltinRoleSeeds = []RoleSeed{
	{
		Role: "role:admin",
		Policies: []Policy{
			{Object: "/admin/*", Action: "*"},
			{Object: "/upload", Action: "POST"},
			{Object: "/cart", Action: "*"},
			{Object: "/cart/*", Action: "*"},
			{Object: "/orders", Action: "*"},
			{Object: "/orders/*", Action: "*"},
			{Object: "/me", Action: "GET"},
		},
	},
	{
		Role: "role:user",
		Policies: []Policy{
			{Object: "/cart", Action: "*"},
			{Object: "/cart/*", Action: "*"},
			{Object: "/orders", Action: "*"},
			{Object: "/orders/*", Action: "*"},
			{Object: "/me", Action: "GET"},
		},
	},
}

// BootstrapBuiltinRoles seeds the built-in roles and their policies.
// Seeding is idempotent, re-running on every boot is safe.
func BootstrapBuiltinRoles(s *Service) error {
	if s == nil {
		return fmt.Errorf("authz service is nil")
	}

	for _, seed := range BuiltinRoleSeeds {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return fmt.Errorf("ensure role %s failed: %w", seed.Role, err)
		}
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("grant policy for %s failed: %w", role, err)
			}
		}
	}
	return nil
}
