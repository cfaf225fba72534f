// Package config provides configuration management for the match tracker.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Every leaf field declares its default through a
// `default` struct tag, which is registered by reflection so that AutomaticEnv
// can resolve it.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Log: logging level and format
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Redis: shared cache address (empty selects the in-process cache)
//   - Storage: MinIO/S3 bucket for the raw match archive
//   - Henrik: remote match source endpoint, credentials, timeouts and limits
//   - Sync: page size, stop threshold, safety caps and worker settings
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.PageSize)
package config
