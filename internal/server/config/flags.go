package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophguard/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string       gRPC bind address (e.g., ":50051")
//	-h string       HTTP health bind address (e.g., ":8080")
//	-d string       PostgreSQL DSN
//	-s string       service token HMAC secret
//	-t duration     HTTP shutdown grace period
//	-log string     log level
//
// os.Args is first filtered with flagx.FilterArgs so flags handled
// elsewhere (-c/-config) do not fail parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-h", "-d", "-s", "-t", "-log"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.GRPCAddr, "a", config.GRPCAddr, "address and port to run gRPC server")
	fs.StringVar(&config.HTTPAddr, "h", config.HTTPAddr, "address and port to run health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.ServiceSecret, "s", config.ServiceSecret, "service token secret")
	fs.DurationVar(&config.ShutdownTimeout, "t", config.ShutdownTimeout, "shutdown timeout")
	fs.StringVar(&config.LogLevel, "log", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
