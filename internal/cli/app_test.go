package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/passwdm/internal/config"
	"github.com/dmitrijs2005/passwdm/internal/database"
	"github.com/dmitrijs2005/passwdm/internal/filex"
	"github.com/dmitrijs2005/passwdm/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	app, err := NewApp(&config.Config{DataDir: filepath.Join(t.TempDir(), "db")}, logging.Nop{})
	require.NoError(t, err)
	app.out = &out
	return app, &out
}

func TestNewApp_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".passwdm")

	app, err := NewApp(&config.Config{DataDir: dir}, logging.Nop{})
	require.NoError(t, err)

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
	assert.False(t, app.isOpen())
	assert.Empty(t, app.getStatus())
}

func TestApp_CreateCloseOpen(t *testing.T) {
	stubInput(t, nil, "alice", "alice", "alice")
	app, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Create(ctx, "personal"))
	assert.True(t, app.isOpen())
	assert.Equal(t, " (personal)", app.getStatus())

	fi, err := os.Stat(filepath.Join(app.dataDir, "personal"))
	require.NoError(t, err)
	assert.EqualValues(t, database.FileSize, fi.Size())

	require.NoError(t, app.Close(ctx))
	assert.False(t, app.isOpen())

	require.NoError(t, app.Open(ctx, "personal"))
	assert.True(t, app.isOpen())
	assert.Equal(t, database.NewHeader(), app.current.Header())

	require.NoError(t, app.Save(ctx))
	require.NoError(t, app.Close(ctx))
}

func TestApp_CreateExisting(t *testing.T) {
	stubInput(t, nil, "alice", "alice", "bob", "bob")
	app, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Create(ctx, "personal"))

	err := app.Create(ctx, "personal")
	assert.ErrorIs(t, err, database.ErrAlreadyExists)
	assert.False(t, app.isOpen(), "previous database is closed before creating")
	assert.Contains(t, out.String(), "a database with that name already exists")
}

func TestApp_OpenWrongPassphrase(t *testing.T) {
	stubInput(t, nil, "alice", "alice", "bob")
	app, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Create(ctx, "personal"))
	require.NoError(t, app.Close(ctx))

	err := app.Open(ctx, "personal")
	assert.Equal(t, database.KindIncorrectPassphrase, database.KindOf(err))
	assert.False(t, app.isOpen())
	assert.Contains(t, out.String(), "incorrect passphrase")
}

func TestApp_OpenMissing(t *testing.T) {
	stubInput(t, nil, "alice")
	app, _ := newTestApp(t)

	err := app.Open(context.Background(), "nope")
	assert.Equal(t, database.KindSystem, database.KindOf(err))
}

func TestApp_InvalidName(t *testing.T) {
	calls := stubInput(t, nil)
	app, _ := newTestApp(t)

	err := app.Create(context.Background(), "../escape")
	assert.ErrorIs(t, err, filex.ErrInvalidName)
	assert.Zero(t, *calls, "no passphrase prompt for an invalid name")
}

func TestApp_SaveWithoutDatabase(t *testing.T) {
	app, out := newTestApp(t)

	err := app.Save(context.Background())
	assert.ErrorIs(t, err, ErrNoDatabase)
	assert.Contains(t, out.String(), "no database is open")

	assert.NoError(t, app.Close(context.Background()))
}

func TestApp_PassphraseMismatchCreatesNothing(t *testing.T) {
	stubInput(t, nil, "alice", "alicia")
	app, _ := newTestApp(t)

	err := app.Create(context.Background(), "personal")
	assert.ErrorIs(t, err, ErrPassphraseMismatch)

	_, statErr := os.Stat(filepath.Join(app.dataDir, "personal"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApp_RunClosesOnExit(t *testing.T) {
	env := "alice"
	stubInput(t, &env)
	captureOutput(t)

	app, _ := newTestApp(t)
	app.in = strings.NewReader("create personal\nexit\n")

	app.Run(context.Background())

	assert.False(t, app.isOpen())
	db, err := database.Open(filepath.Join(app.dataDir, "personal"), []byte("alice"))
	require.NoError(t, err)
	db.Close()
}

func failSave(t *testing.T) {
	t.Helper()
	orig := saveDatabase
	saveDatabase = func(*database.Database) error { return errors.New("disk full") }
	t.Cleanup(func() { saveDatabase = orig })
}

func TestApp_CloseReleasesDatabaseWhenSaveFails(t *testing.T) {
	stubInput(t, nil, "alice", "alice")
	app, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Create(ctx, "personal"))
	db := app.current

	failSave(t)

	err := app.Close(ctx)
	require.EqualError(t, err, "disk full")
	assert.False(t, app.isOpen())
	assert.False(t, db.IsOpen(), "database must be closed even though saving failed")
	assert.Contains(t, out.String(), "disk full")
}

func TestApp_CreateRemovesFileWhenSaveFails(t *testing.T) {
	stubInput(t, nil, "alice", "alice")
	app, _ := newTestApp(t)
	failSave(t)

	err := app.Create(context.Background(), "personal")
	require.EqualError(t, err, "disk full")
	assert.False(t, app.isOpen())

	_, statErr := os.Stat(filepath.Join(app.dataDir, "personal"))
	assert.True(t, os.IsNotExist(statErr), "empty database file must be removed")
}
