package startup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"thumbcache/internal/batch"
	"thumbcache/internal/filesystem"
	"thumbcache/internal/logging"
	"thumbcache/internal/media"
	"thumbcache/internal/platform"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// DefaultEnvFile is loaded by LoadConfig when no file is named.
const DefaultEnvFile = ".env"

// Config holds all application configuration
type Config struct {
	ResourceRoot      string
	Collection        string
	StagingDir        string
	Platform          platform.Convention
	SwitchMode        media.Mode
	Size              media.SizeClass
	Interpreter       string
	MirrorTool        string
	PreviewSubfolders []string
	Port              string
	MetricsEnabled    bool
	LogHealthChecks   bool
}

// CacheDir returns the absolute cache root.
func (c *Config) CacheDir() string {
	return filepath.Join(c.ResourceRoot, c.Collection)
}

// ToBatchConfig converts c into the explicit configuration a batch.Driver
// runs with.
func (c *Config) ToBatchConfig() batch.Config {
	return batch.Config{
		ResourceRoot:      c.ResourceRoot,
		Collection:        c.Collection,
		StagingDir:        c.StagingDir,
		Platform:          c.Platform,
		SwitchMode:        c.SwitchMode,
		Size:              c.Size,
		Interpreter:       c.Interpreter,
		MirrorTool:        c.MirrorTool,
		PreviewSubfolders: c.PreviewSubfolders,
		Retry:             filesystem.DefaultRetryConfig(),
	}
}

// LoadConfig loads and validates configuration from environment variables,
// after merging in envFiles (DefaultEnvFile when none are given). Variables
// already set in the environment win over file values. A missing
// DefaultEnvFile is not an error; a missing named file is.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	resourceRoot := getEnv("CACHE_DIR", "")
	collection := getEnv("COLLECTION", batch.DefaultCollection)
	stagingDir := getEnv("STAGING_DIR", platform.StagingDir())
	conventionStr := getEnv("PATH_CONVENTION", "")
	switchModeStr := getEnv("SWITCH_MODE", "regenerate")
	sizeStr := getEnv("THUMBNAIL_SIZE", "large")
	interpreter := getEnv("SCRIPT_INTERPRETER", "powershell")
	mirrorTool := getEnv("MIRROR_TOOL", "robocopy")
	subfoldersStr := getEnv("PREVIEW_SUBFOLDERS", strings.Join(media.DefaultPreviewSubfolders, ","))
	port := getEnv("PORT", "8080")
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)
	logHealthChecks := getEnvBool("LOG_HEALTH_CHECKS", false)

	logging.Info("  CACHE_DIR:           %s", resourceRoot)
	logging.Info("  COLLECTION:          %s", collection)
	logging.Info("  STAGING_DIR:         %s", stagingDir)
	logging.Info("  SWITCH_MODE:         %s", switchModeStr)
	logging.Info("  THUMBNAIL_SIZE:      %s", sizeStr)
	logging.Info("  SCRIPT_INTERPRETER:  %s", interpreter)
	logging.Info("  MIRROR_TOOL:         %s", mirrorTool)
	logging.Info("  PREVIEW_SUBFOLDERS:  %s", subfoldersStr)
	logging.Info("  PORT:                %s", port)
	logging.Info("  METRICS_ENABLED:     %v", metricsEnabled)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())

	if strings.TrimSpace(resourceRoot) == "" {
		return nil, fmt.Errorf("CACHE_DIR is not set: %w", batch.ErrNoCacheRoot)
	}

	convention := platform.Detect()
	if conventionStr != "" {
		parsed, ok := platform.ParseConvention(conventionStr)
		if !ok {
			return nil, fmt.Errorf("invalid PATH_CONVENTION %q: want windows or posix", conventionStr)
		}
		convention = parsed
	}
	logging.Info("  Path convention:     %s", convention)

	switchMode, err := media.ParseMode(switchModeStr)
	if err != nil {
		return nil, err
	}

	size, err := media.ParseSizeClass(sizeStr)
	if err != nil {
		return nil, err
	}

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	resourceRoot, err = filepath.Abs(resourceRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory path: %w", err)
	}
	logging.Info("  Resource root (absolute): %s", resourceRoot)
	logging.Info("  Cache root:               %s", filepath.Join(resourceRoot, collection))

	if err := ensureDirectory(stagingDir, "staging"); err != nil {
		return nil, fmt.Errorf("staging directory error: %w", err)
	}

	return &Config{
		ResourceRoot:      resourceRoot,
		Collection:        collection,
		StagingDir:        stagingDir,
		Platform:          convention,
		SwitchMode:        switchMode,
		Size:              size,
		Interpreter:       interpreter,
		MirrorTool:        mirrorTool,
		PreviewSubfolders: splitList(subfoldersStr),
		Port:              port,
		MetricsEnabled:    metricsEnabled,
		LogHealthChecks:   logHealthChecks,
	}, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		err := godotenv.Load(DefaultEnvFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", DefaultEnvFile, err)
		}
		if err == nil {
			logging.Debug("Loaded environment from %s", DefaultEnvFile)
		}
		return nil
	}

	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env files %v: %w", files, err)
	}
	logging.Debug("Loaded environment from %v", files)
	return nil
}

// LogPipelineInit logs the cache pipeline a batch will run with.
func LogPipelineInit(cfg batch.Config, stages []string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("PIPELINE")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Cache root:      %s", cfg.CacheDir())
	logging.Info("  Staging dir:     %s", cfg.StagingDir)
	logging.Info("  Switch mode:     %s", cfg.SwitchMode)
	logging.Info("  Thumbnail size:  %s", cfg.Size)
	logging.Info("  Copy stages:     %s", strings.Join(stages, " -> "))
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}
		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes at debug level
func LogHTTPRoutes(router *mux.Router) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if !logging.IsDebugEnabled() {
		return
	}

	routes, err := GetRoutes(router)
	if err != nil {
		logging.Warn("error walking routes: %v", err)
	}

	groups := make(map[string][]RouteInfo)
	for _, route := range routes {
		groups[getRouteGroup(route.Path)] = append(groups[getRouteGroup(route.Path)], route)
	}
	groupKeys := make([]string, 0, len(groups))
	for k := range groups {
		groupKeys = append(groupKeys, k)
	}
	sort.Strings(groupKeys)

	logging.Debug("  Registered routes (%d total):", len(routes))
	for _, group := range groupKeys {
		logging.Debug("  [%s]", group)
		for _, route := range groups[group] {
			logging.Debug("    %-6s %s", route.Method, route.Path)
		}
	}
}

// getRouteGroup returns the first path segment of a route template
func getRouteGroup(path string) string {
	first, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if first == "" {
		return "root"
	}
	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("  Thumbnails:      http://localhost:%s/thumbnails/", config.Port)
	if config.MetricsEnabled {
		logging.Info("  Metrics:         http://localhost:%s/metrics", config.Port)
	} else {
		logging.Info("  Metrics:         DISABLED")
	}
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Info("  %s...", step)
}

// LogShutdownStepComplete logs completion of a shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// Helper functions

func printBanner() {
	logging.Info("------------------------------------------------------------")
	logging.Info("  thumbcache %s (commit %s, built %s)", Version, Commit, BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(value string) []string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
