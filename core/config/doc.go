// Package config provides configuration management for the stock sync service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Store: row store driver selection (memory, object, mysql)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: MySQL connection details
//   - Remote: remote catalog API store id and token
//   - Inventory: table names and job knobs
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
