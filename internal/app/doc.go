// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle that loads a patch and
// steps it tick by tick, decoupled from any specific entrypoint like a CLI.
package app
