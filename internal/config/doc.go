// Package config provides centralized configuration management.
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. An optional YAML configuration file
//	3. Default values (lowest priority)
//
// All environment variables follow the pattern BNI_* for namespacing:
//
//	BNI_SERVER_PORT=8080
//	BNI_STORAGE_DATA_DIR=/var/lib/bnitrack
//	BNI_LOGGING_LEVEL=debug
//	BNI_INGEST_CURRENCY=AED
//
// The YAML file is looked up at config.yaml and configs/config.yaml,
// or wherever BNI_CONFIG_FILE points.
package config
