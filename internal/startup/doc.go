// Package startup handles configuration loading and startup/shutdown
// logging for the thumbcache commands.
//
// # Configuration
//
// Configuration is read from environment variables by [LoadConfig], after
// merging a .env file (values already in the environment win):
//
//   - CACHE_DIR: Resource root that holds the cache folder (required)
//   - COLLECTION: Cache folder name under CACHE_DIR (default: BHS_SYN_CHset)
//   - STAGING_DIR: ASCII-safe staging directory (default: TEMP or the system temp dir)
//   - PATH_CONVENTION: windows or posix; overrides detection from the OS variable
//   - SWITCH_MODE: regenerate or reuse (default: regenerate)
//   - THUMBNAIL_SIZE: large, small or a pixel count (default: large)
//   - SCRIPT_INTERPRETER: PowerShell executable for the script copy stage (default: powershell)
//   - MIRROR_TOOL: Mirror utility for the second copy stage (default: robocopy)
//   - PREVIEW_SUBFOLDERS: Comma-separated preview subfolder names
//   - PORT: HTTP port for serve (default: 8080)
//   - METRICS_ENABLED: Expose /metrics from serve (default: true)
//   - LOG_HEALTH_CHECKS: Log /health requests (default: false)
//   - LOG_LEVEL, DEBUG: Logging level
//
// A missing CACHE_DIR is reported as batch.ErrNoCacheRoot so that the run
// stops before any item is processed. Writability of the root is checked by
// batch.New.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
package startup
