package cors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	allowlist := NewPolicy("https://admin.example.com").Origins()

	tests := []struct {
		origin string
		want   Decision
	}{
		{"", Allow},
		{"http://localhost:3000", Allow},
		{"http://localhost:5173", Allow},
		{"https://admin-project-system-frontend.vercel.app", Allow},
		{"https://admin.example.com", Allow},
		{"http://evil.example", Deny},
		{"https://admin.example.com/", Deny},
		{"http://localhost:3001", Deny},
		{"HTTP://LOCALHOST:3000", Deny},
		{"null", Deny},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.origin, allowlist))
		})
	}
}

func TestNewPolicy(t *testing.T) {
	t.Run("AppendsFrontend", func(t *testing.T) {
		p := NewPolicy("https://admin.example.com/")
		assert.Len(t, p.Origins(), len(DefaultOrigins)+1)
		assert.Contains(t, p.Origins(), "https://admin.example.com")
	})

	t.Run("SkipsDuplicate", func(t *testing.T) {
		p := NewPolicy("http://localhost:3000")
		assert.Equal(t, DefaultOrigins, p.Origins())
	})

	t.Run("SkipsEmpty", func(t *testing.T) {
		p := NewPolicy("")
		assert.Equal(t, DefaultOrigins, p.Origins())
	})

	t.Run("OriginsIsACopy", func(t *testing.T) {
		p := NewPolicy("")
		o := p.Origins()
		o[0] = "http://evil.example"
		assert.ErrorIs(t, p.Check("http://evil.example"), ErrOriginNotAllowed)
	})
}

func TestPolicy_Check(t *testing.T) {
	p := NewPolicy("https://admin.example.com")
	assert.NoError(t, p.Check(""))
	assert.NoError(t, p.Check("http://localhost:3000"))
	assert.ErrorIs(t, p.Check("http://evil.example"), ErrOriginNotAllowed)
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "deny", Deny.String())
}
