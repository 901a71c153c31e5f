package loader_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"employee-sync/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }

func (s *stubFeature) Load(app fiber.Router) error {
	if s.err != nil {
		return s.err
	}
	s.loaded = true
	app.Get("/"+s.name, func(c *fiber.Ctx) error { return c.SendString(s.name) })
	return nil
}

func TestManager_LoadAll(t *testing.T) {
	enabled := &stubFeature{name: "sync", enabled: true}
	disabled := &stubFeature{name: "other", enabled: false}

	mgr := loader.NewManager()
	mgr.Register(enabled)
	mgr.Register(disabled)

	app := fiber.New()
	names, err := mgr.LoadAll(app)
	require.NoError(t, err)
	assert.Equal(t, []string{"sync"}, names)
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
	assert.Len(t, mgr.Features(), 2)

	resp, err := app.Test(httptest.NewRequest("GET", "/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/other", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	first := &stubFeature{name: "first", enabled: true}
	broken := &stubFeature{name: "broken", enabled: true, err: boom}
	last := &stubFeature{name: "last", enabled: true}

	mgr := loader.NewManager()
	mgr.Register(first)
	mgr.Register(broken)
	mgr.Register(last)

	names, err := mgr.LoadAll(fiber.New())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, []string{"first"}, names)
	assert.False(t, last.loaded)
}
