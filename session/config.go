package session

import "github.com/10imaging/serving/mapsafe"

// StringOption reads a string tuning parameter, falling back to def when
// the key is absent or holds a different type.
func (c *Config) StringOption(key, def string) string {
	if c == nil {
		return def
	}
	return mapsafe.Get(c.Options, key, def)
}

// IntOption reads an integer tuning parameter. YAML and JSON decoders may
// surface numbers as float64; mapsafe converts those.
func (c *Config) IntOption(key string, def int) int {
	if c == nil {
		return def
	}
	return mapsafe.Get(c.Options, key, def)
}

// BoolOption reads a boolean tuning parameter.
func (c *Config) BoolOption(key string, def bool) bool {
	if c == nil {
		return def
	}
	return mapsafe.Get(c.Options, key, def)
}
