package landmarkfp

// Config holds configuration options for the landmarkfp service. Mirrors
// the teacher repository's functional-options style
// (pkg/acousticdna/config.go) generalized to the full fingerprinting
// parameter set.
type Config struct {
	// DBPath is the path to the SQLite index file.
	DBPath string

	// TempDir is the directory used to stage transcoded/downloaded audio.
	TempDir string

	// Params is the fingerprinting parameter set this service builds and
	// matches with. Defaults to DefaultParams(). Opening an existing index
	// built with different Params fails with SchemaMismatchError.
	Params Params

	// Logger is the logger instance to use. If nil, a default logger is
	// created.
	Logger Logger

	// Storage is the storage backend to use. If nil, a default SQLite
	// storage is created at DBPath.
	Storage Storage
}

// Option configures a Service at construction time.
type Option func(*Config)

// WithDBPath sets the SQLite index file path.
func WithDBPath(path string) Option {
	return func(c *Config) { c.DBPath = path }
}

// WithTempDir sets the staging directory for transcoded/downloaded audio.
func WithTempDir(dir string) Option {
	return func(c *Config) { c.TempDir = dir }
}

// WithParams overrides the fingerprinting parameter set.
func WithParams(p Params) Option {
	return func(c *Config) { c.Params = p }
}

// WithLogger sets a custom logger.
func WithLogger(log Logger) Option {
	return func(c *Config) { c.Logger = log }
}

// WithStorage sets a custom storage backend, bypassing DBPath entirely.
func WithStorage(storage Storage) Option {
	return func(c *Config) { c.Storage = storage }
}

func defaultConfig() *Config {
	return &Config{
		DBPath:  "landmarkfp.sqlite3",
		TempDir: "/tmp",
		Params:  DefaultParams(),
	}
}
