// Package app is the composition root of contractdesk.
//
// Setup turns command-line options into a ready Env:
//
//	Options ─> config.LoadDotEnv ─> config.Load ─> logging.New ─> contracts.NewClient
//
// Run hands that Env, plus the saved preferences, to ui.Run and blocks until
// the TUI exits. The cobra subcommands call Setup directly so scripted use
// shares the same config, logging and client.
package app
