package glshader

import "log/slog"

// ProgramOption configures a Program or a ShaderCache.
type ProgramOption func(*programOptions)

type programOptions struct {
	logger *slog.Logger
	hash   string
	cache  *ShaderCache
}

// WithLogger sets the logger used for lifecycle and failure reporting.
func WithLogger(l *slog.Logger) ProgramOption {
	return func(o *programOptions) { o.logger = l }
}

// WithHash presets the program's content hash.
func WithHash(hash string) ProgramOption {
	return func(o *programOptions) { o.hash = hash }
}

// WithCache ties the program to the shader cache of its rendering context,
// so Bind and Release keep the cache's last-bound marker current.
func WithCache(c *ShaderCache) ProgramOption {
	return func(o *programOptions) { o.cache = c }
}

func applyProgramOptions(opts []ProgramOption) programOptions {
	o := programOptions{logger: defaultLogger}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = defaultLogger
	}
	return o
}
