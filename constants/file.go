package constants

import (
	"path/filepath"
	"strings"
)

// PDFExtension is the only document format accepted for job descriptions and resumes.
const PDFExtension = "pdf"

// ZipExtension is the only archive format accepted for resume batches.
const ZipExtension = "zip"

// MacOSMetadataPrefix marks archive members created by macOS Finder; they are
// never real resumes and are always skipped.
const MacOSMetadataPrefix = "__MACOSX/"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsResumeMember reports whether an archive member name qualifies as a resume
// document: a .pdf entry not under the platform-metadata directory.
func IsResumeMember(name string) bool {
	if strings.HasPrefix(name, MacOSMetadataPrefix) {
		return false
	}
	return NormalizeExt(filepath.Ext(name)) == PDFExtension
}
