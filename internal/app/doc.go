// Package app contains the core application logic. It wires the type
// registry, the override policy, the script executor and the loader
// together from a Config, decoupled from any specific entrypoint like a CLI.
package app
