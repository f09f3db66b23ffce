package config

// EngineConfig tunes the route synthesizer
type EngineConfig struct {
	DefaultLocale string `yaml:"defaultLocale"`
	LoadTimeoutMS int    `yaml:"loadTimeoutMS" validate:"gte=0"`
	Concurrency   int    `yaml:"concurrency" validate:"gte=0,lte=256"`
}

// PainConfig contains transfer pain aggregation settings
type PainConfig struct {
	// Hubs nil means the defaults; an explicit empty list disables the
	// holiday surcharge.
	Hubs                []string `yaml:"hubs"`
	HolidayMode         string   `yaml:"holidayMode" validate:"omitempty,oneof=per_edge per_station"`
	ChargeLuggageStairs bool     `yaml:"chargeLuggageStairs"`
}

// CoverageConfig is one station the transfer resolver recognizes. Patterns
// are Go regular expressions.
type CoverageConfig struct {
	StationID   string            `yaml:"stationId" validate:"required"`
	Name        string            `yaml:"name" validate:"required"`
	Names       map[string]string `yaml:"names"`
	IDPattern   string            `yaml:"idPattern"`
	TextPattern string            `yaml:"textPattern"`
	Ignore      string            `yaml:"ignore"`
}

// TopologyConfig selects where station graphs come from. Sources are chained
// in the order dir, gtfs, fixtures.
type TopologyConfig struct {
	Fixtures  *bool  `yaml:"fixtures"`
	Dir       string `yaml:"dir"`
	GTFSPath  string `yaml:"gtfsPath"`
	GTFSCache string `yaml:"gtfsCache"`
}

// UseFixtures reports whether the embedded reference hubs are served
func (t TopologyConfig) UseFixtures() bool {
	return t.Fixtures == nil || *t.Fixtures
}

// CacheConfig contains the station graph LRU settings
type CacheConfig struct {
	Disabled   bool `yaml:"disabled"`
	Size       int  `yaml:"size" validate:"gte=0"`
	TTLSeconds int  `yaml:"ttlSeconds" validate:"gte=0"`
}

// RealtimeConfig contains the GTFS-Realtime alerts feed used for outages
type RealtimeConfig struct {
	AlertsURL      string `yaml:"alertsURL" validate:"omitempty,url"`
	ReadIntervalMS int    `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
}

// LoggingConfig contains the log level
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Engine   EngineConfig     `yaml:"engine"`
	Pain     PainConfig       `yaml:"pain"`
	Coverage []CoverageConfig `yaml:"coverage" validate:"dive"`
	Topology TopologyConfig   `yaml:"topology"`
	Cache    CacheConfig      `yaml:"cache"`
	Realtime RealtimeConfig   `yaml:"realtime"`
	Logging  LoggingConfig    `yaml:"logging"`
}
