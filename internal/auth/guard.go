package auth

import (
	"fmt"

	"pdvlite/m/domain"
)

// sectionRoles maps an application section to the roles allowed into it.
// Sections absent from the map require only an authenticated caller.
var sectionRoles = map[string][]string{
	"users":    {domain.RoleAdmin},
	"logs":     {domain.RoleAdmin},
	"config":   {domain.RoleAdmin},
	"reports":  {domain.RoleManager, domain.RoleAdmin},
	"register": {domain.RoleManager, domain.RoleAdmin},
	"pos":      {domain.RoleClerk, domain.RoleManager, domain.RoleAdmin},
	"products": {domain.RoleClerk, domain.RoleManager, domain.RoleAdmin},
}

// CanAccess reports whether identity may enter section.
func CanAccess(section string, identity *domain.Identity) bool {
	if identity == nil {
		return false
	}
	roles, ok := sectionRoles[section]
	if !ok {
		return true
	}
	for _, role := range roles {
		if identity.Role == role {
			return true
		}
	}
	return false
}

// EnsurePermission fails with domain.ErrPermissionDenied when identity may
// not enter section.
func EnsurePermission(section string, identity *domain.Identity) error {
	if !CanAccess(section, identity) {
		return fmt.Errorf("%w: section %q", domain.ErrPermissionDenied, section)
	}
	return nil
}
