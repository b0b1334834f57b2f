// Package cli implements the rtop command-line interface.
//
// Running rtop with no subcommand starts the dashboard. Settings come from
// the config file, then RTOP_* environment variables, then flags.
//
// # Command Structure
//
//	rtop                    - Live system dashboard
//	rtop config init        - Create a config file (interactive or --defaults)
//	rtop config show        - Print the effective config
//	rtop config set <k> <v> - Change one setting in place
//	rtop signals            - List signal ids for the send-signal popup
//	rtop version            - Print build information
//
// # Flag Handling
//
// Global flags (--config, --no-color, --debug) are defined on the root
// command and available to all subcommands. --interval only applies to the
// dashboard.
//
// # Error Handling
//
// Commands return *errors.Error values that carry a code, the cause and a
// suggestion. Execute prints them and exits with status 1.
package cli
