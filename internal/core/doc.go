// Package core provides the business logic for cleaning and converting
// uploaded tabular files.
//
// The package has no UI dependencies. It is used by the web server, the
// sweep CLI and tests without modification.
//
// # Pipeline
//
// Every interaction re-runs one pipeline per uploaded file, starting from
// the file's raw bytes:
//
//  1. [Load] decodes .csv or .xlsx bytes into a [Table]
//  2. [Clean] applies the enabled stages: [CoerceNumeric], [RemoveDuplicates], [FillMissing]
//  3. [Select] projects the table onto the chosen columns
//  4. [BuildChart] plots the first two numeric columns
//  5. [Export] writes CSV or Excel bytes
//
// The stages for a file are driven by its [FileOptions]:
//
//	res := core.Run(file, core.FileOptions{
//	    RemoveDuplicates: true,
//	    FillMissing:      true,
//	    Columns:          []string{"region", "revenue"},
//	})
//	if err := res.Export(w, core.FormatExcel); err != nil {
//	    // ...
//	}
//
// # Workspaces
//
// [Service] keeps one in-memory [Workspace] per browser session. Workspaces
// expire after an idle TTL and are never persisted. A [RunLimiter] bounds
// how many pipeline runs execute at once across all sessions.
//
// # Error Handling
//
// Failures are sentinel errors wrapped with context. [MapError] maps them
// to user-facing messages with a support code:
//
//   - FILE001-FILE008: upload and decode errors
//   - WS001-WS002: workspace and file lookups
//   - COL001, EXP001-EXP002: selection and export
//   - PIPE001-PIPE003, RATE001, REQ001: load shedding and request handling
package core
