package domain

import (
	"fmt"
	"strings"
)

// Role classifies an account. Stored lowercase; parsing is
// case-insensitive.
type Role string

const (
	RoleChallenger Role = "challenger"
	RoleCompany    Role = "company"
	RoleAdmin      Role = "admin"
)

// DefaultRole is assigned when signup omits a role.
const DefaultRole = RoleChallenger

func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleChallenger:
		return RoleChallenger, nil
	case RoleCompany:
		return RoleCompany, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

func (r Role) String() string {
	return string(r)
}
