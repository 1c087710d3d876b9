package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheConfigTTL(t *testing.T) {
	assert.Equal(t, 90*time.Second, CacheConfig{TTLSeconds: 90}.TTL())
	assert.Equal(t, time.Minute, CacheConfig{}.TTL())
	assert.Equal(t, time.Minute, CacheConfig{TTLSeconds: -5}.TTL())
}

func TestCacheConfigDialTimeout(t *testing.T) {
	assert.Equal(t, 2*time.Second, CacheConfig{DialTimeoutSeconds: 2}.DialTimeout())
	assert.Equal(t, 5*time.Second, CacheConfig{}.DialTimeout())
}
