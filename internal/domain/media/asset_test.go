package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKey(t *testing.T) {
	key := NewKey(KindCover, "6560f1c2a9b3e4d5f6a7b8c9", ".png")

	assert.True(t, strings.HasPrefix(key, "covers/6560f1c2a9b3e4d5f6a7b8c9/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.True(t, OwnedBy(key, KindCover, "6560f1c2a9b3e4d5f6a7b8c9"))
	assert.False(t, OwnedBy(key, KindAvatar, "6560f1c2a9b3e4d5f6a7b8c9"))
	assert.False(t, OwnedBy(key, KindCover, "someone-else"))
	assert.False(t, OwnedBy("covers/6560f1c2a9b3e4d5f6a7b8c9/", KindCover, "6560f1c2a9b3e4d5f6a7b8c9"))
}

func TestKind_IsValid(t *testing.T) {
	assert.True(t, KindCover.IsValid())
	assert.True(t, KindAvatar.IsValid())
	assert.False(t, Kind("documents").IsValid())
}
