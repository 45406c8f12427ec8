package catalog

import (
	"regexp"
	"strings"
)

// Size is a TMDB image size variant
type Size string

const (
	SizeW92      Size = "w92"
	SizeW185     Size = "w185"
	SizeW342     Size = "w342"
	SizeW500     Size = "w500"
	SizeW780     Size = "w780"
	SizeW1280    Size = "w1280"
	SizeOriginal Size = "original"
)

// PreviewSize is the smallest variant, used for low quality previews
const PreviewSize = SizeW92

// ImageURL resolves a TMDB file path into an absolute URL.
// An empty path yields "" so callers fall back to placeholders.
func ImageURL(base, path string, size Size) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + "/" + string(size) + path
}

var sizeSegment = regexp.MustCompile(`/(w\d+|original)/`)

// PreviewURL derives the low resolution variant of a TMDB image URL.
// ok is false for other hosts, which have no cheap variant.
func PreviewURL(url string) (preview string, ok bool) {
	if !strings.Contains(url, "image.tmdb.org") {
		return "", false
	}
	loc := sizeSegment.FindStringIndex(url)
	if loc == nil {
		return "", false
	}
	return url[:loc[0]] + "/" + string(PreviewSize) + "/" + url[loc[1]:], true
}
