package transfer

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"thumbcache/internal/cacheindex"
	"thumbcache/internal/filesystem"
	"thumbcache/internal/logging"
	"thumbcache/internal/mediatypes"
	"thumbcache/internal/metrics"
	"thumbcache/internal/platform"
)

// Stage names a copy strategy.
type Stage string

const (
	// StageVerify is reported when no strategy ran.
	StageVerify Stage = "verify"
	// StageScript copies through a UTF-8 BOM PowerShell script.
	StageScript Stage = "script"
	// StageMirror copies through robocopy scoped to one file.
	StageMirror Stage = "mirror"
	// StageRaw reads the whole source and writes it verbatim.
	StageRaw Stage = "raw"
)

// Request is one copy of Source into DestDir under DestName.
type Request struct {
	Source   string
	DestDir  string
	DestName string
}

// Dest returns the destination path in native form.
func (r Request) Dest() string {
	return filepath.Join(r.DestDir, r.DestName)
}

// CopyFunc attempts one copy. Its error is advisory: success is decided by
// the directory listing afterwards.
type CopyFunc func(ctx context.Context, req Request) error

// Strategy pairs a copy attempt with the stage it reports as.
type Strategy struct {
	Stage Stage
	Copy  CopyFunc
}

// Config configures a Transferer.
type Config struct {
	Platform platform.Convention
	// Prefix is prepended to returned cache-relative paths, normally the
	// collection name.
	Prefix      string
	StagingDir  string
	Interpreter string
	MirrorTool  string
	Retry       filesystem.RetryConfig
}

// DefaultConfig returns the configuration for the host platform.
func DefaultConfig() Config {
	return Config{
		Platform:    platform.Detect(),
		StagingDir:  platform.StagingDir(),
		Interpreter: "powershell",
		MirrorTool:  "robocopy",
		Retry:       filesystem.DefaultRetryConfig(),
	}
}

// Transferer copies files into a cache root and confirms them through the
// cache index.
type Transferer struct {
	cfg        Config
	index      *cacheindex.Index
	runner     Runner
	strategies []Strategy
}

// New builds a Transferer. A nil runner uses ExecRunner.
func New(cfg Config, index *cacheindex.Index, runner Runner) *Transferer {
	if runner == nil {
		runner = ExecRunner{}
	}
	if index == nil {
		index = cacheindex.New(nil)
	}
	if cfg.StagingDir == "" {
		cfg.StagingDir = platform.StagingDir()
	}
	if cfg.Interpreter == "" {
		cfg.Interpreter = "powershell"
	}
	if cfg.MirrorTool == "" {
		cfg.MirrorTool = "robocopy"
	}
	if cfg.Retry.MaxRetries == 0 && cfg.Retry.InitialBackoff == 0 {
		cfg.Retry = filesystem.DefaultRetryConfig()
	}

	t := &Transferer{cfg: cfg, index: index, runner: runner}
	t.strategies = t.defaultStrategies()
	return t
}

func (t *Transferer) defaultStrategies() []Strategy {
	raw := Strategy{Stage: StageRaw, Copy: t.rawCopy}
	if t.cfg.Platform != platform.Windows {
		return []Strategy{raw}
	}
	return []Strategy{
		{Stage: StageScript, Copy: t.scriptCopy},
		{Stage: StageMirror, Copy: t.mirrorCopy},
		raw,
	}
}

// Stages lists the strategies in the order they are tried.
func (t *Transferer) Stages() []Stage {
	stages := make([]Stage, 0, len(t.strategies))
	for _, s := range t.strategies {
		stages = append(stages, s.Stage)
	}
	return stages
}

// RelativePath returns the display path for destName: Prefix, a slash, and
// the name without its extension.
func (t *Transferer) RelativePath(destName string) string {
	base := mediatypes.TrimExt(destName)
	if t.cfg.Prefix == "" {
		return base
	}
	return t.cfg.Prefix + "/" + base
}

// Transfer copies source into destDir as destName and returns the
// cache-relative path. If destDir already lists destName no strategy runs.
// Otherwise strategies run in order until the listing confirms the
// destination; a zero exit status alone never counts.
func (t *Transferer) Transfer(ctx context.Context, source, destDir, destName string) (string, error) {
	rel := t.RelativePath(destName)
	req := Request{Source: source, DestDir: destDir, DestName: destName}

	if t.index.Exists(destDir, destName) {
		logging.Debug("transfer: %s already present, skipping copy", req.Dest())
		metrics.TransfersTotal.WithLabelValues("already_present").Inc()
		return rel, nil
	}

	lastStage := StageVerify
	var lastErr error = ErrUnconfirmed

	for _, s := range t.strategies {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		start := time.Now()
		err := s.Copy(ctx, req)
		metrics.TransferDuration.WithLabelValues(string(s.Stage)).Observe(time.Since(start).Seconds())
		lastStage = s.Stage

		if t.index.Exists(destDir, destName) {
			metrics.TransferAttemptsTotal.WithLabelValues(string(s.Stage), "confirmed").Inc()
			metrics.TransfersTotal.WithLabelValues("copied").Inc()
			logging.Debug("transfer: %s -> %s confirmed after %s stage", source, req.Dest(), s.Stage)
			return rel, nil
		}
		metrics.TransferAttemptsTotal.WithLabelValues(string(s.Stage), "unconfirmed").Inc()

		if err == nil {
			err = ErrUnconfirmed
		}
		lastErr = err
		logging.Debug("transfer: %s stage did not produce %s: %v", s.Stage, req.Dest(), err)
	}

	metrics.TransfersTotal.WithLabelValues("failed").Inc()
	copyErr := &CopyError{Source: source, Dest: req.Dest(), Stage: lastStage, Err: lastErr}
	if !errors.Is(lastErr, context.Canceled) {
		logging.Warn("transfer: %v", copyErr)
	}
	return "", copyErr
}
