package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Run("accepts every supported role", func(t *testing.T) {
		for _, role := range SupportedRoles() {
			parsed, err := ParseRole(role.String())
			require.NoError(t, err)
			assert.Equal(t, role, parsed)
		}
	})

	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseRole("")
		require.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := ParseRole("admin")
		require.Error(t, err)
	})

	t.Run("is case sensitive", func(t *testing.T) {
		_, err := ParseRole("Youth")
		require.Error(t, err)
	})
}

func TestDomainPrefix(t *testing.T) {
	assert.Equal(t, "", RoleYouth.DomainPrefix())
	assert.Equal(t, "emp", RoleEmployer.DomainPrefix())
	assert.Equal(t, "gov", RoleGovernment.DomainPrefix())
	assert.Equal(t, "ins", RoleInstitution.DomainPrefix())

	// Every non-youth prefix is exactly three letters.
	for _, role := range SupportedRoles() {
		if role == RoleYouth {
			continue
		}
		assert.Len(t, role.DomainPrefix(), 3)
	}
}
