// Package config handles loading and parsing backroom configuration files.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/backroom/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. BACKROOM_API_URL, when set, overrides the base URL from any source
//
// # TOML Format
//
// Example config.toml:
//
//	api_url = "https://shop.example.com/api"
//	request_timeout_seconds = 30
//
// Both fields are optional. Tilde expansion is performed automatically for
// the config file path.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults), and TOML parsing errors. A
// missing config file is NOT an error - the console works out-of-the-box
// against a local backend.
package config
