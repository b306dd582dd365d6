package content

import "github.com/goliatone/go-content/internal/runtimeconfig"

// Config aliases re-export the runtime configuration so host applications
// never import internal packages directly.
type (
	Config         = runtimeconfig.Config
	ContentConfig  = runtimeconfig.ContentConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LintConfig     = runtimeconfig.LintConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	Features       = runtimeconfig.Features
	CommandsConfig = runtimeconfig.CommandsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// Configuration validation errors.
var (
	ErrContentDirRequired       = runtimeconfig.ErrContentDirRequired
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrStorageDriverUnknown     = runtimeconfig.ErrStorageDriverUnknown
	ErrCommandsCronRequiresSync = runtimeconfig.ErrCommandsCronRequiresSync
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

// DefaultConfig returns the filesystem-first defaults: lint everything under
// content/, mirror into a local SQLite index.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
