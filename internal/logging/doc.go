// Package logger provides leveled logging for Envault CLI commands.
//
// Verbosity is controlled by two flags:
//
//   - --verbose: shows info and warning messages
//   - --debug: shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown. Commands
// create a Logger in their PersistentPreRun and pass it down.
package logger
