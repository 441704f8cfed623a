// Package logging provides opt-in file logging with rotation for hanzi.
// With --debug, JSON logs are written to ~/.hanzi/logs/hanzi.log and
// mirrored to stderr.
//
// Without --debug only warnings and errors reach stderr, as plain text.
package logging
