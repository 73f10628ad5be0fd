package export

import (
	"fmt"
	"regexp"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^\w\-]+`)

func safe(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// Filename builds the download name from the active filters and date:
// Activos_<status|todos>_<type|tipos>_<YYYY-MM-DD>.<ext>.
func Filename(status, typeLabel, ext string, now time.Time) string {
	if status == "" {
		status = "todos"
	}
	if typeLabel == "" {
		typeLabel = "tipos"
	}
	return fmt.Sprintf("Activos_%s_%s_%s.%s", safe(status), safe(typeLabel), now.Format("2006-01-02"), ext)
}
