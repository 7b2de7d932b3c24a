package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		input string
		want  Role
	}{
		{"challenger", RoleChallenger},
		{"Challenger", RoleChallenger},
		{"COMPANY", RoleCompany},
		{"  Admin  ", RoleAdmin},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.input)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseRoleUnknown(t *testing.T) {
	for _, input := range []string{"", "superuser", "adm in"} {
		if _, err := ParseRole(input); err == nil {
			t.Fatalf("expected error for role %q", input)
		}
	}
}
