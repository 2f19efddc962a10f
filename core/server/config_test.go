package server_test

import (
	"testing"

	"project-admin/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	valid := server.Config{Port: "5000", FrontendURL: "https://app.example.com", BodyLimit: 1024}

	tests := []struct {
		name    string
		mutate  func(c *server.Config)
		wantErr string
	}{
		{"Valid", func(c *server.Config) {}, ""},
		{"Missing Frontend", func(c *server.Config) { c.FrontendURL = "" }, "FRONTEND_URL is required"},
		{"Frontend With Path", func(c *server.Config) { c.FrontendURL = "https://app.example.com/login" }, "must not contain a path"},
		{"Frontend Bad Scheme", func(c *server.Config) { c.FrontendURL = "ftp://app.example.com" }, "must use http or https"},
		{"Bad Port", func(c *server.Config) { c.Port = "http" }, "not a valid port"},
		{"Zero Body Limit", func(c *server.Config) { c.BodyLimit = 0 }, "SERVER_BODY_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateOrigin(t *testing.T) {
	assert.NoError(t, server.ValidateOrigin("http://localhost:3000"))
	assert.NoError(t, server.ValidateOrigin("https://example.com/"))
	assert.Error(t, server.ValidateOrigin("example.com"))
	assert.Error(t, server.ValidateOrigin("https://"))
	assert.Error(t, server.ValidateOrigin("https://example.com?x=1"))
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Address())
}
