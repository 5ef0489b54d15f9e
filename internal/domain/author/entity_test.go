package author

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAuthor(t *testing.T) {
	a := NewAuthor("6560f1c2a9b3e4d5f6a7b8c9", "u1", "Jane Doe", "Writes things", nil)

	assert.Equal(t, "jane-doe-6560f1c2a9b3e4d5f6a7b8c9", a.Slug)
	assert.Equal(t, "u1", a.UserID)
	assert.NotNil(t, a.SocialLinks)
	assert.Empty(t, a.Books)
}

func TestUpdateDetails_KeepsSlug(t *testing.T) {
	a := NewAuthor("6560f1c2a9b3e4d5f6a7b8c9", "u1", "Jane Doe", "", []string{"https://x.com/jane"})
	before := a.UpdatedAt

	a.UpdateDetails("Jane Q. Doe", "Novelist", nil)

	assert.Equal(t, "Jane Q. Doe", a.Name)
	assert.Equal(t, "Novelist", a.About)
	assert.Empty(t, a.SocialLinks)
	assert.Equal(t, "jane-doe-6560f1c2a9b3e4d5f6a7b8c9", a.Slug)
	assert.False(t, a.UpdatedAt.Before(before))
}
