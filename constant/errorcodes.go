package constant

// Composer error codes
const (
	// Validation errors (1xx)
	ErrCodeEmptyText     = "CMP101"
	ErrCodeInvalidSize   = "CMP102"
	ErrCodeInvalidBorder = "CMP103"
	ErrCodeImageTooLarge = "CMP104"
	ErrCodeNothingToSave = "CMP105"
	ErrCodeEmptyPath     = "CMP106"
	ErrCodeInvalidColor  = "CMP107"

	// Capacity errors (2xx)
	ErrCodeEncode = "CMP201"

	// Resource errors (3xx)
	ErrCodeLogoLoad  = "CMP301"
	ErrCodeWritePNG  = "CMP302"
	ErrCodeScan      = "CMP303"
	ErrCodeLogoStat  = "CMP304"
	ErrCodeLogoEmpty = "CMP305"
)

// Session error codes
const (
	ErrCodeSessionPersist = "SES001"
	ErrCodeSessionLoad    = "SES002"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Load operation errors (1xx)
	ErrCodeDBLookup = "DB101"

	// Store operation errors (2xx)
	ErrCodeDBUpsert = "DB201"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// Error types for categorization
const (
	// Composer error types, one per failure kind
	ErrTypeValidation = "validation"
	ErrTypeResource   = "resource"
	ErrTypeCapacity   = "capacity"

	// Session error types
	ErrTypeSession = "session"

	// Infrastructure error types
	ErrTypeDB = "db"
)
