// Package file loads optional server settings from a TOML file in the
// lattice config directory. Credentials never live here; they come from
// the environment. The file only overrides endpoint and timeout defaults.
package file
