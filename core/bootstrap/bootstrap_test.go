package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"project-admin/core/config"
	"project-admin/core/database"
	"project-admin/core/database/dbtest"
	"project-admin/core/logger"
	"project-admin/core/server"
	"project-admin/core/storage"
	"project-admin/core/storage/mocks"
	"project-admin/core/token"
	usermodels "project-admin/feature/users/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func validConfig() *config.Config {
	return &config.Config{
		Server: server.Config{
			Port:        "0",
			FrontendURL: "https://admin.example.com",
			BodyLimit:   1 << 20,
			Environment: "test",
		},
		Auth: token.Config{
			JWTSecret:  "bootstrap-test-secret-0123456789",
			TokenTTL:   time.Hour,
			BcryptCost: 4,
		},
		Database: database.Config{
			Driver:          database.DriverSQLite,
			Name:            "unused",
			ConnectAttempts: 1,
			AutoMigrate:     true,
		},
		Storage: storage.Config{Bucket: "attachments", MaxUploadBytes: 5 << 20},
		Log:     logger.Config{Level: "error", Format: "json"},
	}
}

type harness struct {
	listens atomic.Int32
	exits   chan int
	release chan struct{}
	connErr error
	db      *gorm.DB
}

func newHarness(t *testing.T) *harness {
	return &harness{exits: make(chan int, 1), release: make(chan struct{}), db: dbtest.Open(t)}
}

func (h *harness) options() Options {
	return Options{
		Logger: zap.NewNop(),
		Connect: func(ctx context.Context, _ database.Config) (*gorm.DB, error) {
			select {
			case <-h.release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			if h.connErr != nil {
				return nil, h.connErr
			}
			return h.db, nil
		},
		Listen: func(network, _ string) (net.Listener, error) {
			h.listens.Add(1)
			return net.Listen(network, "127.0.0.1:0")
		},
		Exit: func(code int) { h.exits <- code },
	}
}

func (h *harness) exitCode(t *testing.T) int {
	t.Helper()
	select {
	case code := <-h.exits:
		return code
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit")
		return -1
	}
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func shutdown(t *testing.T, app *App) {
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Shutdown(ctx)
	})
}

func TestNew_InvalidConfigNeverListens(t *testing.T) {
	h := newHarness(t)

	cfg := validConfig()
	cfg.Server.FrontendURL = ""
	cfg.Auth.JWTSecret = ""

	app, err := New(cfg, h.options())
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "FRONTEND_URL is required")
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
	assert.Zero(t, h.listens.Load())
}

func TestStart_ServesBeforeDatabase(t *testing.T) {
	h := newHarness(t)
	app, err := New(validConfig(), h.options())
	require.NoError(t, err)
	shutdown(t, app)

	st, err := app.Start(t.Context())
	require.NoError(t, err)
	require.NoError(t, st.Serving.Wait(waitCtx(t)))
	assert.EqualValues(t, 1, h.listens.Load())

	select {
	case <-st.Database.Done():
		t.Fatal("database stage finished before the connection was released")
	default:
	}

	base := "http://" + app.Addr().String()
	resp, err := http.Get(base + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	login := func() int {
		resp, err := http.Post(base+"/api/auth/login", "application/json",
			strings.NewReader(`{"email":"ada@example.com","password":"secret123"}`))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusServiceUnavailable, login())

	close(h.release)
	require.NoError(t, st.Database.Wait(waitCtx(t)))

	assert.True(t, h.db.Migrator().HasTable(&usermodels.User{}))
	assert.Equal(t, http.StatusUnauthorized, login())
}

func TestStart_DatabaseFailureExits(t *testing.T) {
	h := newHarness(t)
	h.connErr = errors.New("connection refused")
	close(h.release)

	app, err := New(validConfig(), h.options())
	require.NoError(t, err)
	shutdown(t, app)

	st, err := app.Start(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 1, h.exitCode(t))
	assert.ErrorContains(t, st.Database.Wait(waitCtx(t)), "connection refused")
}

func TestStart_WaitForDatabase(t *testing.T) {
	h := newHarness(t)
	cfg := validConfig()
	cfg.Server.WaitForDatabase = true

	app, err := New(cfg, h.options())
	require.NoError(t, err)
	shutdown(t, app)

	st, err := app.Start(t.Context())
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, h.listens.Load())
	assert.Nil(t, app.Addr())

	close(h.release)
	require.NoError(t, st.Database.Wait(waitCtx(t)))
	require.NoError(t, st.Serving.Wait(waitCtx(t)))
	assert.EqualValues(t, 1, h.listens.Load())
	assert.NotNil(t, app.Addr())
}

func TestStart_WaitForDatabaseFailure(t *testing.T) {
	h := newHarness(t)
	h.connErr = errors.New("access denied")
	close(h.release)

	cfg := validConfig()
	cfg.Server.WaitForDatabase = true

	app, err := New(cfg, h.options())
	require.NoError(t, err)
	shutdown(t, app)

	st, err := app.Start(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 1, h.exitCode(t))
	assert.ErrorContains(t, st.Serving.Wait(waitCtx(t)), "access denied")
	assert.Zero(t, h.listens.Load())
}

func TestStart_ListenFailure(t *testing.T) {
	h := newHarness(t)
	opts := h.options()
	opts.Listen = func(string, string) (net.Listener, error) {
		return nil, errors.New("address already in use")
	}

	app, err := New(validConfig(), opts)
	require.NoError(t, err)

	st, err := app.Start(t.Context())
	assert.Nil(t, st)
	assert.ErrorContains(t, err, "address already in use")
}

func TestStart_CancelledDoesNotExit(t *testing.T) {
	h := newHarness(t)
	app, err := New(validConfig(), h.options())
	require.NoError(t, err)
	shutdown(t, app)

	ctx, cancel := context.WithCancel(t.Context())
	st, err := app.Start(ctx)
	require.NoError(t, err)
	cancel()

	assert.ErrorIs(t, st.Database.Wait(waitCtx(t)), context.Canceled)
	select {
	case code := <-h.exits:
		t.Fatalf("unexpected exit with status %d", code)
	default:
	}
}

func TestNew_StorageRaisesBodyLimit(t *testing.T) {
	store := new(mocks.Client)
	made := make(chan struct{})
	store.On("BucketExists", mock.Anything, "attachments").Return(false, nil)
	store.On("MakeBucket", mock.Anything, "attachments", minio.MakeBucketOptions{}).
		Return(nil).Run(func(mock.Arguments) { close(made) })

	h := newHarness(t)
	opts := h.options()
	opts.Storage = store

	cfg := validConfig()
	cfg.Storage.Enabled = true

	app, err := New(cfg, opts)
	require.NoError(t, err)
	shutdown(t, app)
	assert.Greater(t, app.Fiber().Config().BodyLimit, int(cfg.Storage.MaxUploadBytes))

	_, err = app.Start(t.Context())
	require.NoError(t, err)

	select {
	case <-made:
	case <-time.After(5 * time.Second):
		t.Fatal("bucket was not created")
	}
	store.AssertExpectations(t)
}

func TestModels(t *testing.T) {
	db := dbtest.Open(t, Models()...)
	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}
