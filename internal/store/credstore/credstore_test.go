package credstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desidelights/tiffin/internal/model"
)

func TestRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TIFFIN_TOKEN", "")

	got, err := Get()
	require.NoError(t, err)
	assert.Nil(t, got, "fresh home means not logged in")

	user := model.User{ID: "u1", Name: "Asha", Email: "asha@example.com"}
	require.NoError(t, Set("tok-123", user))

	got, err = Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok-123", got.Token)
	assert.Equal(t, user, got.User)
	assert.Equal(t, "file", got.Source)

	require.NoError(t, Delete())
	got, err = Get()
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting twice is fine
	require.NoError(t, Delete())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TIFFIN_TOKEN", "Bearer env-tok")

	got, err := Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "env-tok", got.Token, "bearer prefix is stripped")
	assert.Equal(t, "env", got.Source)
}

func TestSetRejectsEmptyToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	assert.Error(t, Set("   ", model.User{}))
}

func TestSetStripsBearerPrefix(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TIFFIN_TOKEN", "")

	require.NoError(t, Set("bearer tok-9", model.User{Name: "Ravi"}))
	got, err := Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok-9", got.Token)
}
