package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/focusflow/internal/flagx"
	"github.com/dmitrijs2005/focusflow/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON configuration file.
// Fields are pointers so that only keys present in the file override the
// values already loaded; durations accept "50m" or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	SessionLifetime  *timex.Duration `json:"session_lifetime"`
	CookieSecure     *bool           `json:"cookie_secure"`
	LogLevel         *string         `json:"log_level"`
	TraceStdout      *bool           `json:"trace_stdout"`
}

// parseJson loads the file named by -c/-config, if any, and copies the keys
// it contains into config. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.SessionLifetime != nil {
		config.SessionLifetime = c.SessionLifetime.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.TraceStdout != nil {
		config.TraceStdout = *c.TraceStdout
	}
}
