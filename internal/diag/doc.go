// Package diag defines the diagnostic model shared by the scanner, the
// grammar engine and the driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – annotated spans. An error note marks the fault itself, an info
//     note marks related context such as where a bracket was opened.
//   - Help – optional single remediation hint.
//   - Fixes – optional text edits that would resolve the problem.
//
// Every grammar diagnostic carries at least one note.
//
// # Construction and emission
//
// Construction is pure: messages.go holds one builder per grammar violation
// (UnexpectedChar, HeadingTooDeep, NewlineInAttrs, ...) returning a value.
// Producers hand values to a Reporter; BagReporter stores them in a Bag,
// DedupReporter filters repeats, MultiReporter fans out. ReportBuilder is the
// chained form for ad-hoc diagnostics.
//
// Rendering lives in internal/diagfmt; policy such as escalating warnings
// (Bag.EscalateWarnings) is applied by the driver.
package diag
