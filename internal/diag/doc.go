// Package diag defines the diagnostic model shared by the loader, the
// compiler engine and the bundle builder.
//
// Diagnostics never abort compilation. A phase reports through a Reporter;
// the driver collects them in a Bag and the CLI renders the bag with
// internal/diagfmt. Package diag performs no formatting or IO.
//
// Codes are numeric with a stable string form: LEX1xxx for problems found
// while scanning a script, IO4xxx for problems loading inputs.
package diag
