package transfer

import (
	"strings"

	"golang.org/x/text/encoding/unicode"

	"thumbcache/internal/platform"
)

// PowerShell treats the typographic single quotes as string delimiters too,
// so every one of them has to be doubled.
var psQuoteReplacer = strings.NewReplacer(
	"'", "''",
	"\u2018", "\u2018\u2018",
	"\u2019", "\u2019\u2019",
	"\u201a", "\u201a\u201a",
	"\u201b", "\u201b\u201b",
)

// psLiteral renders s as a single-quoted PowerShell string: no variable
// expansion, no escape sequences.
func psLiteral(s string) string {
	return "'" + psQuoteReplacer.Replace(s) + "'"
}

// copyScript returns the PowerShell source that creates destDir and copies
// source into it as destName. Paths go through .NET and -LiteralPath so no
// wildcard expansion happens.
func copyScript(req Request) string {
	destDir := platform.Normalize(req.DestDir, platform.Windows)
	source := platform.Normalize(req.Source, platform.Windows)
	dest := strings.TrimRight(destDir, `\`) + `\` + req.DestName

	lines := []string{
		"$ErrorActionPreference = 'Stop'",
		"[System.IO.Directory]::CreateDirectory(" + psLiteral(destDir) + ") | Out-Null",
		"Copy-Item -LiteralPath " + psLiteral(source) + " -Destination " + psLiteral(dest) + " -Force",
		"",
	}
	return strings.Join(lines, "\r\n")
}

// encodeScript prefixes the UTF-8 byte order mark. Windows PowerShell reads
// a BOM-less script in the ANSI code page and mangles non-ASCII paths.
func encodeScript(script string) ([]byte, error) {
	return unicode.UTF8BOM.NewEncoder().Bytes([]byte(script))
}
