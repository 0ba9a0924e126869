// Package constants provides shared constants for the opti-credit application.
package constants

import "time"

// Simulation horizon
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// HorizonYears is the fixed length of every projection
	HorizonYears = 25

	// HorizonMonths is the number of monthly ticks in every projection
	HorizonMonths = HorizonYears * MonthsPerYear
)

// Financial constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// YearPrecision is the precision of the fractional year on monthly points
	YearPrecision = 10

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// DefaultTargetYear is the year highlighted when the configuration omits one
	DefaultTargetYear = 10
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatPDF is the printable report format
	OutputFormatPDF = "pdf"

	// DefaultPDFFile is where the PDF report is written when no file is configured
	DefaultPDFFile = "opti-credit-report.pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Cache constants
const (
	// CacheBackendMemory keeps simulation results in process memory
	CacheBackendMemory = "memory"

	// CacheBackendRedis keeps simulation results in Redis
	CacheBackendRedis = "redis"

	// CacheBackendNone disables memoization
	CacheBackendNone = "none"

	// CacheKeyPrefix namespaces simulation results in shared stores
	CacheKeyPrefix = "opti-credit:simulation:"

	// DefaultCacheTTL is how long a simulation result stays cached when no ttl is configured
	DefaultCacheTTL = time.Hour

	// DefaultCacheMaxEntries bounds the in-memory cache
	DefaultCacheMaxEntries = 1024
)
