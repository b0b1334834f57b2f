// Package ui provides styled output for rtop's command-line subcommands.
//
// The dashboard itself renders with the monitor package; this package covers
// everything printed outside of it: the version header, status lines and
// simple tables.
//
// # Color Scheme
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (amber)  - Warnings
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
package ui
