package agents

import (
	"github.com/thinkmate-ai/thinkmate/tools"
)

// ExtractPhotos scans the invocations in execution order and returns the
// URLs of the first photo result found. Later photo results are ignored so
// a run that fetched photos twice still displays one coherent gallery.
func ExtractPhotos(invocations []Invocation) []string {
	for _, inv := range invocations {
		photo, ok := inv.Result.(tools.PhotoResult)
		if !ok {
			continue
		}
		urls := photo.PhotoURLs()
		if len(urls) == 0 {
			continue
		}
		out := make([]string, len(urls))
		copy(out, urls)
		return out
	}
	return nil
}
