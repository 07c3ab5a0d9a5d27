// Package cli реализует команды notesctl поверх локального хранилища.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stickynotes/internal/notes/adapters/kv/file"
	"stickynotes/internal/notes/adapters/kv/sqlite"
	"stickynotes/internal/notes/adapters/storage"
	"stickynotes/internal/notes/app"
	"stickynotes/internal/notes/config"
	"stickynotes/internal/notes/layout"
	portstorage "stickynotes/internal/notes/ports/storage"
	"stickynotes/pkg/logger"
)

// EnvPath - переменная с путем к хранилищу по умолчанию.
const EnvPath = "NOTESCTL_PATH"

// Сообщения об ошибках.
const (
	ErrOpenBackend  = "open backend"
	ErrCloseBackend = "close backend"
)

// ErrUnsupportedBackend возвращается для хранилищ, недоступных из CLI.
var ErrUnsupportedBackend = errors.New("unsupported backend, use file or sqlite")

type options struct {
	backend  string
	path     string
	json     bool
	logLevel string
}

// session - открытое хранилище и загруженные из него заметки и настройки.
// Хранилище открывается на время одной команды.
type session struct {
	opts       *options
	kv         portstorage.KV
	repo       *app.NotesRepository
	prefs      *app.Preferences
	positioner layout.Positioner
}

// NewRootCmd собирает дерево команд notesctl.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	sess := &session{opts: opts, positioner: layout.NewPositioner(layout.DefaultConfig())}

	root := &cobra.Command{
		Use:           "notesctl",
		Short:         "Sticky notes from the command line",
		Long:          "Manage sticky notes stored in a local file directory or sqlite database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.NewLogger(logger.Development, opts.logLevel)
			if err != nil {
				return err
			}
			cmd.SetContext(logger.NewContext(cmd.Context(), log))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.backend, "backend", "b", string(config.BackendFile), "Storage backend: file or sqlite")
	root.PersistentFlags().StringVarP(&opts.path, "path", "p", "", "Storage path (default: $"+EnvPath+" or ~/.stickynotes)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print JSON instead of a table")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "Log level for diagnostics on stderr")

	root.AddCommand(
		newAddCmd(sess, opts),
		newListCmd(sess, opts),
		newSearchCmd(sess, opts),
		newEditCmd(sess, opts),
		newRmCmd(sess, opts),
		newLayoutCmd(sess, opts),
		newStateCmd(sess, opts),
	)

	return root
}

// Execute запускает notesctl с аргументами процесса.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// run оборачивает команду: открывает хранилище, загружает данные и
// закрывает хранилище после выполнения.
func (s *session) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		if err := s.open(ctx); err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, s.close(ctx))
		}()
		return fn(cmd, args)
	}
}

func (s *session) open(ctx context.Context) error {
	opts := s.opts
	path, err := resolvePath(opts)
	if err != nil {
		return err
	}

	switch config.Backend(opts.backend) {
	case config.BackendFile:
		s.kv, err = file.New(ctx, path)
	case config.BackendSQLite:
		s.kv, err = sqlite.Open(ctx, path)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedBackend, opts.backend)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrOpenBackend, err)
	}

	store := storage.NewStore(s.kv)
	s.repo = app.NewNotesRepository(store)
	s.prefs = app.NewPreferences(store)
	s.repo.Initialize(ctx)
	s.prefs.Initialize(ctx)
	return nil
}

func (s *session) close(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	if err := s.kv.Close(); err != nil {
		logger.Log(ctx).Warn(ctx, ErrCloseBackend, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCloseBackend, err)
	}
	s.kv = nil
	return nil
}

func resolvePath(opts *options) (string, error) {
	if opts.path != "" {
		return opts.path, nil
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if config.Backend(opts.backend) == config.BackendSQLite {
		return filepath.Join(home, ".stickynotes", "notes.db"), nil
	}
	return filepath.Join(home, ".stickynotes", "data"), nil
}
