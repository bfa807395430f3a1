// Package config loads typed configuration structs from environment
// variables using struct tags, with optional .env file support for local
// development.
//
// All process tunables (token TTLs, key paths, storage DSNs) are declared as
// tagged structs next to the code they configure and loaded explicitly at
// startup; there is no ambient configuration state beyond the process
// environment itself.
package config
