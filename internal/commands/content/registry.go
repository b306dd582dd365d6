package contentcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-content/internal/commands"
	"github.com/goliatone/go-content/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the content command handlers produced by RegisterContentCommands.
type HandlerSet struct {
	Validate *ValidateDirectoryHandler
	Sync     *SyncDirectoryHandler
	List     *ListEntriesHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	validateHandlerOpts []commands.HandlerOption[ValidateDirectoryCommand]
	syncHandlerOpts     []commands.HandlerOption[SyncDirectoryCommand]
	listHandlerOpts     []commands.HandlerOption[ListEntriesCommand]
	reportSink          ReportSink
	resultSink          ResultSink
	entriesSink         EntriesSink
}

// WithValidateHandlerOptions forwards options to the ValidateDirectoryHandler constructor.
func WithValidateHandlerOptions(opts ...commands.HandlerOption[ValidateDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.validateHandlerOpts = append(cfg.validateHandlerOpts, opts...)
	}
}

// WithSyncHandlerOptions forwards options to the SyncDirectoryHandler constructor.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.syncHandlerOpts = append(cfg.syncHandlerOpts, opts...)
	}
}

// WithListHandlerOptions forwards options to the ListEntriesHandler constructor.
func WithListHandlerOptions(opts ...commands.HandlerOption[ListEntriesCommand]) Option {
	return func(cfg *options) {
		cfg.listHandlerOpts = append(cfg.listHandlerOpts, opts...)
	}
}

// WithReportSink registers a callback that receives lint reports from validate runs.
func WithReportSink(sink ReportSink) Option {
	return func(cfg *options) {
		cfg.reportSink = sink
	}
}

// WithResultSink registers a callback that receives sync results.
func WithResultSink(sink ResultSink) Option {
	return func(cfg *options) {
		cfg.resultSink = sink
	}
}

// WithEntriesSink registers a callback that receives list query results.
func WithEntriesSink(sink EntriesSink) Option {
	return func(cfg *options) {
		cfg.entriesSink = sink
	}
}

// RegisterContentCommands builds the content command handlers and registers
// them with the provided registry. A HandlerSet containing the constructed
// handlers is returned so callers can wire additional integrations
// (dispatcher, cron) as needed.
func RegisterContentCommands(reg CommandRegistry, service interfaces.MarkdownService, linter interfaces.Linter, syncer interfaces.Syncer, catalog interfaces.CatalogService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("content command registration: markdown service is nil")
	}
	if linter == nil {
		return nil, errors.New("content command registration: linter is nil")
	}
	if syncer == nil {
		return nil, errors.New("content command registration: syncer is nil")
	}
	if catalog == nil {
		return nil, errors.New("content command registration: catalog service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "content")

	validateHandler := NewValidateDirectoryHandler(service, linter, logger, gates, cfg.reportSink, cfg.validateHandlerOpts...)
	syncHandler := NewSyncDirectoryHandler(service, syncer, logger, gates, cfg.resultSink, cfg.syncHandlerOpts...)
	listHandler := NewListEntriesHandler(catalog, logger, gates, cfg.entriesSink, cfg.listHandlerOpts...)

	if reg != nil {
		for _, handler := range []any{validateHandler, syncHandler, listHandler} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}

	return &HandlerSet{
		Validate: validateHandler,
		Sync:     syncHandler,
		List:     listHandler,
	}, nil
}

// RegisterSyncCron wires the provided sync handler into a cron registrar
// using the supplied command configuration and message payload. The handler
// is executed with a background context.
func RegisterSyncCron(reg CronRegistrar, handler *SyncDirectoryHandler, cfg command.HandlerConfig, msg SyncDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
