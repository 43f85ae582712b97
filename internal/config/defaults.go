package config

const (
	defaultDestination   = "~/Pictures/archive"
	defaultFFprobeBinary = "ffprobe"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

func defaultExcludedExtensions() []string {
	return []string{".xmp", ".pto"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Destination: defaultDestination,
		},
		Import: Import{
			ExcludedExtensions: defaultExcludedExtensions(),
			FFprobeBinary:      defaultFFprobeBinary,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
