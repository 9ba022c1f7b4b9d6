package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBConfigDSN(t *testing.T) {
	c := &DBConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "mentor",
		Password: "secret",
		Name:     "reviews",
		SSLMode:  "disable",
		TimeZone: "Asia/Tokyo",
	}
	assert.Equal(t,
		"host=localhost user=mentor password=secret dbname=reviews port=5432 sslmode=disable TimeZone=Asia/Tokyo",
		c.DSN())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("REVIEW_COMPOSER_TEST_KEY", "set")
	assert.Equal(t, "set", getEnv("REVIEW_COMPOSER_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("REVIEW_COMPOSER_TEST_MISSING", "fallback"))
}
