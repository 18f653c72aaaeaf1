// Package covers derives book cover image URLs from ISBNs.
//
// The URL points at the Open Library covers service and is stored as-is;
// no fetch or validation happens server-side, so an ISBN without a cover
// simply 404s in the browser.
package covers

import (
	"fmt"
	"strings"
)

const urlFormat = "https://covers.openlibrary.org/b/isbn/%s-M.jpg"

// URL returns the medium-size cover image URL for the given ISBN.
func URL(isbn string) string {
	return fmt.Sprintf(urlFormat, strings.TrimSpace(isbn))
}
