package wad

// EmitZipOption configures EmitZip's per-archive compression behavior
// (the STORE-vs-DEFLATE choice) in the functional-options style. It is
// the only options type in this package; EmitWad takes no options.
type EmitZipOption func(*zipEmitConfig)

type zipEmitConfig struct {
	forceStore bool
	level      int
}

func newZipEmitConfig() zipEmitConfig {
	return zipEmitConfig{level: -1} // flate.DefaultCompression
}

// WithForceStore disables the DEFLATE attempt entirely, storing every
// lump uncompressed. Useful for archives about to be recompressed
// downstream, where paying for DEFLATE twice is wasted work.
func WithForceStore() EmitZipOption {
	return func(c *zipEmitConfig) { c.forceStore = true }
}

// WithCompressionLevel overrides DEFLATE's compression level (see
// flate.NoCompression..flate.BestCompression). The default matches
// flate.DefaultCompression.
func WithCompressionLevel(level int) EmitZipOption {
	return func(c *zipEmitConfig) { c.level = level }
}
