package config

import (
	"errors"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the given dotenv files and the process
// environment. Process variables win over file entries; missing files are
// ignored.
//
// Recognised variables:
//
//	ADDRESS           HTTP bind host
//	PORT              HTTP bind port
//	GRPC_ADDRESS      gRPC bind address
//	DATABASE_URL      PostgreSQL DSN or "memory"
//	SECRET_KEY        session signing secret
//	SESSION_LIFETIME  duration string ("50m") or whole minutes
//	LOG_LEVEL         debug|info|warn|error
//	COOKIE_SECURE     boolean
//	TRACE_STDOUT      boolean
//
// Malformed values panic, as in the other configuration layers.
func parseEnv(config *Config, files ...string) {
	vars := map[string]string{}

	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			panic(err)
		}
		for k, v := range m {
			vars[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}

	host, port, err := net.SplitHostPort(config.EndpointAddrHTTP)
	if err != nil {
		host, port = "", ""
	}
	addrHost, hasHost := lookup("ADDRESS")
	addrPort, hasPort := lookup("PORT")
	if hasHost {
		host = addrHost
	}
	if hasPort {
		port = addrPort
	}
	if hasHost || hasPort {
		config.EndpointAddrHTTP = net.JoinHostPort(host, port)
	}

	if v, ok := lookup("GRPC_ADDRESS"); ok {
		config.EndpointAddrGRPC = v
	}
	if v, ok := lookup("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := lookup("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := lookup("SESSION_LIFETIME"); ok {
		config.SessionLifetime = mustParseLifetime(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
	if v, ok := lookup("COOKIE_SECURE"); ok {
		config.CookieSecure = mustParseBool(v)
	}
	if v, ok := lookup("TRACE_STDOUT"); ok {
		config.TraceStdout = mustParseBool(v)
	}
}

func mustParseLifetime(v string) time.Duration {
	v = strings.TrimSpace(v)
	if minutes, err := strconv.Atoi(v); err == nil {
		return time.Duration(minutes) * time.Minute
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}

func mustParseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		panic(err)
	}
	return b
}
