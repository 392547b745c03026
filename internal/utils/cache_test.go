package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeyNamespacesParts(t *testing.T) {
	assert.Equal(t, "questbot:adventures:list", CacheKey("adventures", "list"))
	assert.Equal(t, "questbot:leaderboard:money", CacheKey("leaderboard", "money"))
	assert.Equal(t, "questbot:admin:users:page=1:size=20", CacheKey("admin", "users", "page=1", "size=20"))
}
