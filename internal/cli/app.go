package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/passwdm/internal/common"
	"github.com/dmitrijs2005/passwdm/internal/config"
	"github.com/dmitrijs2005/passwdm/internal/database"
	"github.com/dmitrijs2005/passwdm/internal/filex"
	"github.com/dmitrijs2005/passwdm/internal/logging"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

var ErrNoDatabase = errors.New("no database is open")

var errorPrefix = color.New(color.FgRed, color.Bold).Sprint("error: ")

// saveDatabase is a test seam for (*database.Database).Save.
var saveDatabase = (*database.Database).Save

type App struct {
	logger  logging.Logger
	dataDir string
	current *database.Database
	in      io.Reader
	out     io.Writer
}

// NewApp prepares the data directory and returns an App with no database
// open.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	logger = logger.With("app", common.AppName, "session", uuid.NewString())

	return &App{logger: logger, dataDir: dir, in: os.Stdin, out: os.Stdout}, nil
}

// Run starts the REPL and blocks until the user exits. The current database,
// if any, is saved and closed on the way out.
func (a *App) Run(ctx context.Context) {
	a.logger.Debug(ctx, "session started", "data_dir", a.dataDir)
	defer func() {
		_ = a.Close(ctx)
		a.logger.Debug(ctx, "session ended")
	}()

	fmt.Fprintln(a.out, "Welcome to passwdm (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.in))
}

func (a *App) isOpen() bool {
	return a.current.IsOpen()
}

func (a *App) getStatus() string {
	if !a.isOpen() {
		return ""
	}
	return fmt.Sprintf(" (%s)", filepath.Base(a.current.Name()))
}

// Create closes the current database, creates name in the data directory and
// makes it current. The new database is saved immediately so it is never
// left empty on disk.
func (a *App) Create(ctx context.Context, name string) error {
	path, err := filex.DatabasePath(a.dataDir, name)
	if err != nil {
		return a.fail(ctx, "create", err)
	}

	if err := a.Close(ctx); err != nil {
		return err
	}

	pass, err := GetNewPassphrase(a.out)
	if err != nil {
		return a.fail(ctx, "create", err)
	}

	db, err := database.Create(path, pass)
	if err != nil {
		return a.fail(ctx, "create", err)
	}

	if err := saveDatabase(db); err != nil {
		db.Close()
		_ = os.Remove(path)
		return a.fail(ctx, "create", err)
	}

	a.current = db
	a.logger.Info(ctx, "database created", "path", path)
	fmt.Fprintf(a.out, "Created database %q\n", name)
	return nil
}

// Open closes the current database, opens name and makes it current.
func (a *App) Open(ctx context.Context, name string) error {
	path, err := filex.DatabasePath(a.dataDir, name)
	if err != nil {
		return a.fail(ctx, "open", err)
	}

	if err := a.Close(ctx); err != nil {
		return err
	}

	pass, err := GetPassphrase(a.out, "Enter passphrase: ")
	if err != nil {
		return a.fail(ctx, "open", err)
	}

	db, err := database.Open(path, pass)
	if err != nil {
		return a.fail(ctx, "open", err)
	}

	a.current = db
	a.logger.Info(ctx, "database opened", "path", path)
	fmt.Fprintf(a.out, "Opened database %q\n", name)
	return nil
}

// Save writes the current database to disk.
func (a *App) Save(ctx context.Context) error {
	if !a.isOpen() {
		return a.fail(ctx, "save", ErrNoDatabase)
	}

	if err := saveDatabase(a.current); err != nil {
		return a.fail(ctx, "save", err)
	}

	a.logger.Info(ctx, "database saved", "path", a.current.Name())
	return nil
}

// Close saves and then closes the current database. The database is closed
// even if saving fails. Without a current database it does nothing.
func (a *App) Close(ctx context.Context) error {
	if !a.isOpen() {
		return nil
	}

	db := a.current
	a.current = nil
	defer db.Close()

	if err := saveDatabase(db); err != nil {
		return a.fail(ctx, "close", err)
	}

	a.logger.Info(ctx, "database closed", "path", db.Name())
	return nil
}

// fail logs err, prints it for the user and returns it.
func (a *App) fail(ctx context.Context, op string, err error) error {
	a.logger.Warn(ctx, "command failed", "op", op, "kind", database.KindOf(err).String(), "error", err)
	fmt.Fprintln(a.out, errorPrefix+database.Describe(err))
	return err
}
