package maint

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Text that was stored as UTF-8 bytes but decoded with one of these code
// pages shows up as "├¡" (CP437), "Ã\u00ad" (Windows-1252) or "├®" (CP850)
// instead of "í" or "é". CP850 goes last: it also holds "Ã" and "©", so it
// would misread Windows-1252 damage.
var mojibakeSources = []*charmap.Charmap{
	charmap.CodePage437,
	charmap.Windows1252,
	charmap.CodePage850,
}

// RepairText undoes UTF-8 mojibake run by run. A run of non-ASCII runes is
// replaced only when re-encoding it with a source code page yields valid
// UTF-8; anything else is left untouched.
func RepairText(s string) string {
	if isASCII(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runStart := -1
	for i, r := range s {
		if r < utf8.RuneSelf {
			if runStart >= 0 {
				b.WriteString(repairRun(s[runStart:i]))
				runStart = -1
			}
			b.WriteRune(r)
			continue
		}
		if runStart < 0 {
			runStart = i
		}
	}
	if runStart >= 0 {
		b.WriteString(repairRun(s[runStart:]))
	}
	return b.String()
}

func repairRun(run string) string {
	for _, cm := range mojibakeSources {
		if fixed, ok := reencode(cm, run); ok {
			// A broken non-breaking space comes back as U+00A0.
			return strings.ReplaceAll(fixed, "\u00a0", " ")
		}
	}
	return run
}

func reencode(enc encoding.Encoding, run string) (string, bool) {
	raw, err := enc.NewEncoder().String(run)
	if err != nil || !utf8.ValidString(raw) || raw == run {
		return "", false
	}
	return raw, true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
