package media

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	filenameStampLayout = "20060102150405"
	maxBaseRunes        = 40
	fallbackBase        = "image"
)

// UniqueFilename derives the stored name for an upload:
// <base>_<yyyyMMddHHmmss>_<first 8 hex of id><.ext>. The base keeps ASCII
// letters, digits, '_' and '-'; any other rune becomes '-'.
func UniqueFilename(original string, now time.Time, id uuid.UUID) string {
	original = filepath.Base(strings.ReplaceAll(strings.TrimSpace(original), `\`, "/"))
	if original == "." || original == "/" {
		original = ""
	}
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	if ext == "." {
		ext = ""
	}

	base = sanitizeBase(base)
	if base == "" {
		base = fallbackBase
	}
	hex := strings.ReplaceAll(id.String(), "-", "")
	return base + "_" + now.Format(filenameStampLayout) + "_" + hex[:8] + sanitizeExt(ext)
}

func sanitizeBase(base string) string {
	var b strings.Builder
	count := 0
	for _, r := range base {
		if count == maxBaseRunes {
			break
		}
		if isFilenameRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
		count++
	}
	return b.String()
}

func sanitizeExt(ext string) string {
	if ext == "" {
		return ""
	}
	var b strings.Builder
	b.WriteByte('.')
	for _, r := range strings.ToLower(ext[1:]) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 1 {
		return ""
	}
	return b.String()
}

func isFilenameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	default:
		return false
	}
}
