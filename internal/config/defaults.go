package config

// Defaults: Jupiter from Kuala Lumpur, late 2025.
const (
	DefaultObserverName      = "Kuala Lumpur"
	DefaultObserverLatitude  = 3.0
	DefaultObserverLongitude = 101.6
	DefaultObserverElevation = 50.0
	DefaultObserverTimezone  = "Asia/Kuala_Lumpur"

	DefaultTargetName        = "jupiter"
	DefaultTargetMinAltitude = 5.0

	DefaultRangeStart = "2025-11-11"
	DefaultRangeEnd   = "2025-12-10"

	DefaultWindowStartHour   = 21
	DefaultWindowEndHour     = 2
	DefaultWindowStepMinutes = 10
	DefaultWindowStrict      = false

	DefaultIlluminationMinPercent = 20.0
	DefaultIlluminationMaxPercent = 50.0

	DefaultWorkers = 1

	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"

	DefaultReportFormat  = "text"
	DefaultReportChart   = ""
	DefaultReportNoColor = false
)
