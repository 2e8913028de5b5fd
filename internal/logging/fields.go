package logging

// Имена полей структурированных логов.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldFiles  = "files"
	FieldJobs   = "jobs"
	FieldConfig = "config"
	FieldPhase  = "phase"

	FieldElapsed     = "elapsed"
	FieldErrors      = "errors"
	FieldWarnings    = "warnings"
	FieldParagraphs  = "paragraphs"
	FieldCommands    = "commands"
	FieldCacheHit    = "cache_hit"
	FieldCacheDir    = "cache_dir"
	FieldDiagnostics = "diagnostics"
)
