package loader

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeature struct {
	name    string
	prefix  string
	enabled bool
	err     error
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) Prefix() string  { return f.prefix }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(router fiber.Router) error {
	if f.err != nil {
		return f.err
	}
	router.Get("/ping", func(c *fiber.Ctx) error { return c.SendString(f.name) })
	return nil
}

func TestManager_LoadAll(t *testing.T) {
	mgr := NewManager()
	mgr.Register(&fakeFeature{name: "auth", prefix: "/api/auth", enabled: true})
	mgr.Register(&fakeFeature{name: "hidden", prefix: "/api/hidden", enabled: false})
	mgr.Register(&fakeFeature{name: "users", prefix: "/api/users", enabled: true})

	app := fiber.New()
	loaded, err := mgr.LoadAll(app)
	require.NoError(t, err)
	assert.Equal(t, []string{"auth", "users"}, loaded)
	assert.Len(t, mgr.Features(), 3)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/users/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/hidden/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestManager_LoadAllError(t *testing.T) {
	boom := errors.New("boom")
	mgr := NewManager()
	mgr.Register(&fakeFeature{name: "auth", prefix: "/api/auth", enabled: true})
	mgr.Register(&fakeFeature{name: "broken", prefix: "/api/broken", enabled: true, err: boom})

	loaded, err := mgr.LoadAll(fiber.New())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"auth"}, loaded)
}
