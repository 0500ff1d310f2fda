package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Jane Doe", DisplayName("jane.doe@example.com"))
	assert.Equal(t, "Jane", DisplayName("jane@example.com"))
	assert.Equal(t, "Jane Doe Jobs", DisplayName("jane_doe+jobs@example.com"))
	assert.Equal(t, "User", DisplayName("@example.com"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a@b.com", Normalize(" A@B.Com "))
	assert.Equal(t, "a@b.com", Normalize("a@b.com"))
}
