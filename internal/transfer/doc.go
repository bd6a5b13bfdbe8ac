// Package transfer copies a staged or source image into a cache root through
// an ordered list of strategies, each verified by directory listing.
//
// On Windows the strategies are, in order:
//
//  1. script: a UTF-8 BOM PowerShell script creating the directory and
//     copying with literal paths, run by the configured interpreter;
//  2. mirror: robocopy scoped to the single source file;
//  3. raw: read the whole source into memory and write it out.
//
// Every other platform only uses raw.
//
// After each attempt the cache index is asked whether the destination is
// listed; exit codes are never trusted on their own, because some virtual
// drives report a copy as complete before the file is visible. When the
// destination is listed before any attempt, Transfer returns immediately.
package transfer
