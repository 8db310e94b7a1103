package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/flowdesk"
	"github.com/aretw0/flowdesk/internal/config"
	"github.com/aretw0/flowdesk/internal/logging"
	"github.com/aretw0/flowdesk/pkg/adapters/file"
	"github.com/aretw0/flowdesk/pkg/adapters/memory"
	"github.com/aretw0/flowdesk/pkg/adapters/redis"
	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/ports"
)

// CreateLogger builds the application logger from the log settings.
// Logs go to w (usually Stderr) to stay apart from command output.
func CreateLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(w, level, cfg.Format), nil
}

// NewSession creates an editor session configured from cfg.
func NewSession(cfg *config.Config, logger *slog.Logger, hooks domain.LifecycleHooks, extra ...flowdesk.Option) *flowdesk.Session {
	opts := append(cfg.SessionOptions(),
		flowdesk.WithLogger(logger),
		flowdesk.WithLifecycleHooks(hooks),
	)
	return flowdesk.New(append(opts, extra...)...)
}

// OpenStore opens the definition store selected by cfg. The returned close
// function releases its connections and is never nil.
func OpenStore(cfg config.StoreConfig) (ports.DefinitionStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), noop, nil
	case config.DriverFile, "":
		format := file.FormatJSON
		if cfg.Format == string(file.FormatYAML) {
			format = file.FormatYAML
		}
		return file.New(cfg.Path, file.WithFormat(format)), noop, nil
	case config.DriverRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(time.Duration(cfg.Redis.TTL)))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// ResolveDefinition loads ref as a file path when such a file exists,
// otherwise as an id from store.
func ResolveDefinition(ctx context.Context, store ports.DefinitionStore, ref string) (domain.WorkflowDefinition, error) {
	if ref == "" {
		return domain.WorkflowDefinition{}, errors.New("no definition given")
	}
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		def, err := file.ReadDefinition(ref)
		if err != nil {
			return domain.WorkflowDefinition{}, fmt.Errorf("failed to read %s: %w", ref, err)
		}
		return def, nil
	}
	if store == nil {
		return domain.WorkflowDefinition{}, fmt.Errorf("definition %q: %w", ref, domain.ErrDefinitionNotFound)
	}
	return store.Load(ctx, ref)
}
