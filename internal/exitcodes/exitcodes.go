package exitcodes

// Exit codes for dsclean
// These codes form the contract with scripts and CI jobs
const (
	Success        = 0 // Run completed; partial disposal failures still exit 0 unless strict
	InvalidConfig  = 2 // Bad root path, flags or configuration file
	PartialFailure = 3 // Strict mode only: at least one file could not be moved
	RuntimeError   = 4 // Run interrupted or failed unexpectedly
)
