package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID   = "X-Request-ID"
	HeaderContentType = "Content-Type"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain   = "domain"
	CtxGenerate = "Generate"
	CtxSave     = "Save"
	CtxVerify   = "Verify"
	CtxClear    = "Clear"
	CtxUpdate   = "Update"

	// Infrastructure context names
	CtxDB       = "db"
	CtxLoad     = "Load"
	CtxStore    = "Store"
	CtxClose    = "Close"
	CtxEncode   = "Encode"
	CtxLoadLogo = "LoadLogo"
	CtxWritePNG = "WritePNG"
	CtxAPI      = "api"
	CtxTerminal = "TerminalPreview"

	// General context names
	CtxRouter  = "Router"
	CtxMain    = "Main"
	CtxIndex   = "Index"
	CtxPreview = "Preview"
)

// Data field keys
const (
	// Composer data fields
	DataService    = "service"
	DataTextLength = "text_length"
	DataModuleSize = "module_size"
	DataBorder     = "border"
	DataFill       = "fill"
	DataBackground = "background"
	DataLogoPath   = "logo_path"
	DataLogoEdge   = "logo_edge"
	DataVersion    = "version"
	DataWidth      = "width"
	DataHeight     = "height"
	DataModules    = "modules"
	DataDest       = "destination"
	DataCacheHit   = "cache_hit"
	DataKind       = "kind"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataAddr        = "addr"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
	DataConfigPath  = "config_path"
)

// Error message constants
const (
	ErrEmptyText       = "text cannot be empty"
	ErrInvalidSize     = "module size must be a positive integer"
	ErrInvalidBorder   = "border must be a non-negative integer"
	ErrImageTooLarge   = "requested image exceeds the maximum edge"
	ErrNothingToSave   = "nothing to save: generate a QR code first"
	ErrEmptyPath       = "destination path cannot be empty"
	ErrInvalidColor    = "invalid color"
	ErrLogoTooSmall    = "image too small for a logo"
	ErrSessionNotFound = "session state not found"
)

// Error codes
const (
	ErrCodeAPIParseForm      = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAPIRender         = "API003"
	ErrCodeAppConfig         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
	ErrCodeAppDBInit         = "APP004"
)

// Error types
const (
	ErrTypeAPI = "api"
	ErrTypeApp = "application"
)

// Form UI routes
const (
	RouteIndex       = "/"
	RouteGenerate    = "/generate"
	RouteSave        = "/save"
	RouteClear       = "/clear"
	RoutePreviewPNG  = "/preview.png"
	RoutePreviewJSON = "/api/preview"
	RouteHealthcheck = "/health"
)

// Form field names
const (
	FieldText       = "text"
	FieldSize       = "size"
	FieldBorder     = "border"
	FieldFill       = "fill"
	FieldBackground = "background"
	FieldLogo       = "logo"
	FieldPath       = "path"
	FieldVerify     = "verify"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Environment constants
const (
	EnvPrefix      = "QRLOGO_"
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Message constants for application
const (
	MsgApplicationStarting   = "Application starting"
	MsgFailedToLoadConfig    = "Failed to load configuration"
	MsgFailedToInitDB        = "Failed to initialize session store"
	MsgServerStarting        = "Server starting"
	MsgServerFailedToStart   = "Server failed to start"
	MsgServerShuttingDown    = "Server shutting down"
	MsgServerShutdownError   = "Error during server shutdown"
	MsgServerStopped         = "Server stopped"
	MsgRequestReceived       = "Request received"
	MsgRequestCompleted      = "Request completed"
	MsgSettingUpRoutes       = "Setting up form routes"
	MsgHealthcheckRequest    = "Handling healthcheck request"
	MsgHealthy               = "Healthy"
	MsgGenerated             = "QR code generated"
	MsgSaved                 = "QR code saved"
	MsgCleared               = "Session cleared"
	MsgSavedNotice           = "QR code saved to %s"
	MsgGenerateFailedNotice  = "Could not generate the QR code: %v"
	MsgSaveFailedNotice      = "Could not save the QR code: %v"
	MsgDecodedNotice         = "Decoded back as %q"
	MsgDecodeFailedNotice    = "Generated, but the code could not be decoded back: %v"
	MsgSessionRestoreFailure = "Failed to restore session state, starting from defaults"
)

// Cache namespaces
const (
	LogoNamespace = "LOGO"
)

// Defaults
const (
	DefaultText       = ""
	DefaultModuleSize = 10
	DefaultBorder     = 1
	DefaultFill       = "#000000"
	DefaultBackground = "#ffffff"
	DefaultFilename   = "qrcode.png"
	DefaultExtension  = ".png"
	LogoScale         = 0.2
	// MaxRasterEdge caps every generated image; an RGBA raster this wide is 1 GiB
	MaxRasterEdge = 1 << 14
)
