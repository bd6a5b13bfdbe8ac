package transfer

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"thumbcache/internal/filesystem"
	"thumbcache/internal/logging"
	"thumbcache/internal/platform"
)

// robocopy exit codes 0-7 are success variants (bit flags); 8 and above
// mean at least one copy failed.
const mirrorFailureCode = 8

// scriptCopy writes a PowerShell script to the staging directory and runs it
// with the configured interpreter.
func (t *Transferer) scriptCopy(ctx context.Context, req Request) error {
	data, err := encodeScript(copyScript(req))
	if err != nil {
		return fmt.Errorf("encode copy script: %w", err)
	}

	f, err := os.CreateTemp(t.cfg.StagingDir, "thumbcache_copy_*.ps1")
	if err != nil {
		return fmt.Errorf("create copy script: %w", err)
	}
	scriptPath := f.Name()
	defer func() {
		if err := os.Remove(scriptPath); err != nil && !os.IsNotExist(err) {
			logging.Debug("transfer: failed to remove script %s: %v", scriptPath, err)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write copy script: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close copy script: %w", err)
	}

	res, err := t.runner.Run(ctx, t.cfg.Interpreter,
		"-NoProfile",
		"-NonInteractive",
		"-ExecutionPolicy", "Bypass",
		"-File", platform.Normalize(scriptPath, platform.Windows),
	)
	if err != nil {
		return fmt.Errorf("run %s: %w", t.cfg.Interpreter, err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%s exited with code %d: %s", t.cfg.Interpreter, res.ExitCode, strings.TrimSpace(string(res.Output)))
	}
	return nil
}

// mirrorCopy runs robocopy for the single source file, then renames the
// mirrored copy when the cache name differs from the source name.
func (t *Transferer) mirrorCopy(ctx context.Context, req Request) error {
	slashed := platform.Normalize(req.Source, platform.Posix)
	srcDir := platform.Normalize(path.Dir(slashed), platform.Windows)
	srcName := path.Base(slashed)
	destDir := platform.Normalize(req.DestDir, platform.Windows)

	res, err := t.runner.Run(ctx, t.cfg.MirrorTool,
		srcDir, destDir, srcName,
		"/R:2", "/W:1",
		"/NFL", "/NDL", "/NJH", "/NJS", "/NP",
	)
	if err != nil {
		return fmt.Errorf("run %s: %w", t.cfg.MirrorTool, err)
	}
	if res.ExitCode >= mirrorFailureCode {
		return fmt.Errorf("%s exited with code %d: %s", t.cfg.MirrorTool, res.ExitCode, strings.TrimSpace(string(res.Output)))
	}

	if filesystem.SameName(srcName, req.DestName) {
		return nil
	}
	mirrored := filepath.Join(req.DestDir, srcName)
	if err := os.Rename(mirrored, req.Dest()); err != nil {
		// The source name may not be ASCII-safe; it must not stay listed.
		if rmErr := os.Remove(mirrored); rmErr != nil && !os.IsNotExist(rmErr) {
			logging.Warn("transfer: failed to remove mirrored %s: %v", mirrored, rmErr)
		}
		return fmt.Errorf("rename mirrored %s: %w", mirrored, err)
	}
	return nil
}

// rawCopy buffers the whole source and writes it to the destination. The
// destination name only appears once the write is complete.
func (t *Transferer) rawCopy(_ context.Context, req Request) error {
	data, err := filesystem.ReadFileWithRetry(req.Source, t.cfg.Retry)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.MkdirAll(req.DestDir, 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}
	if err := filesystem.WriteFileWithRetry(req.Dest(), data, 0o644, t.cfg.Retry); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}
