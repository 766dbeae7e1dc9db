package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN, or "memory"
//	-s string   session signing secret
//	-t int      session lifetime, minutes
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first so that -c/-config and
// flags owned by other layers never cause a parse error.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	sessionLifetime := fs.Int("t", int(config.SessionLifetime.Minutes()), "session lifetime (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only an explicit -t overrides, so sub-minute lifetimes from earlier layers survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionLifetime = time.Duration(*sessionLifetime) * time.Minute
		}
	})
}
