package config

const (
	// DefaultUserAgent is the identifying agent handed to the robots policy when a
	// test case does not name one.
	DefaultUserAgent = "googlebot"
	// ReportFileSuffix is appended to the report identifier to build the report file name.
	ReportFileSuffix = ".robots-test-results.xml"
	// DefaultReportDir is where reports are written when no directory is configured.
	DefaultReportDir = "."
	// DefaultConfigFile is the YAML config file picked up when present.
	DefaultConfigFile = "robots-tester.yaml"
	// ReportFailureAbort fails the run as soon as the report cannot be written.
	ReportFailureAbort = "abort"
	// ReportFailureWarn logs a report write failure and fails the exit status only.
	ReportFailureWarn = "warn"
)
