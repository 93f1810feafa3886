package wasmplugin

import "io"

// Config holds module loading options.
type Config struct {
	stdout           io.Writer
	stderr           io.Writer
	name             string
	memoryLimitPages uint32
}

// Option configures module loading.
type Option func(*Config)

// WithStdout routes the guest's stdout to w. Discarded by default.
func WithStdout(w io.Writer) Option {
	return func(c *Config) {
		c.stdout = w
	}
}

// WithStderr routes the guest's stderr to w. Discarded by default.
func WithStderr(w io.Writer) Option {
	return func(c *Config) {
		c.stderr = w
	}
}

// WithName names the instantiated module. Anonymous by default.
func WithName(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}

// WithMemoryLimitPages caps guest memory in pages (64KB each).
// 0 means the wazero default (65536 pages = 4GB).
// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *Config) {
		c.memoryLimitPages = pages
	}
}
