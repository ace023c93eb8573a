// Package config loads application configuration from the process environment
// into tagged Go structs.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - The default `.env` file in the working directory is loaded once per
//     process (a missing file is not an error). Additional files can be loaded
//     explicitly with LoadEnv.
//   - Load parses the environment into any struct using `env`/`envDefault`
//     field tags, including nested structs.
//
// The parsed struct is returned to the caller and passed to constructors
// explicitly, so tests can build configurations with t.Setenv without
// resetting shared state.
//
// # Usage
//
//	type Config struct {
//	    Port      int    `env:"PORT" envDefault:"5050"`
//	    JWTSecret string `env:"JWT_SECRET,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("config: %v", err)
//	}
//
// # Error Handling
//
// Sentinel errors can be compared with errors.Is:
//
//   - ErrParsingConfig – the environment could not be parsed into the struct
//     (for example a `required` variable is missing).
//   - ErrLoadingEnvFile – an explicitly requested .env file could not be read.
//   - ErrNilPointer – nil pointer passed to Load.
package config
