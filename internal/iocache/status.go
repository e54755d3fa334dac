package iocache

import (
	"fmt"
	"io"

	"github.com/huangsam/lifespan/schema"
)

// PrintCacheStatus writes cache status information to w.
func PrintCacheStatus(w io.Writer, status schema.CacheStatus) {
	fmt.Fprintf(w, "Cache Backend: %s\n", status.Backend)
	fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Fprintf(w, "Cached Tables: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}
