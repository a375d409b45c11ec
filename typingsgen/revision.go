package typingsgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Zizwar/google-api-typings-generator/internal/discovery"
)

// revisionPrefix is the marker written into every generated file. The raw
// revision value follows the prefix verbatim so it round-trips exactly.
const revisionPrefix = "// Revision: "

// ErrUnknownRevision marks a document whose revision cannot be determined.
// Recoverable: the offending document is skipped, the batch continues.
var ErrUnknownRevision = errors.New("document revision cannot be determined")

// FormatRevision renders the revision marker line.
func FormatRevision(rev int64) string {
	return revisionPrefix + strconv.FormatInt(rev, 10)
}

// ExtractRevision scans a previously generated file for its embedded revision
// marker line. It reports false when no parsable marker is present.
func ExtractRevision(r io.Reader) (int64, bool) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, revisionPrefix)
		if !ok {
			continue
		}
		rev, err := strconv.ParseInt(strings.TrimSpace(rest), 10, 64)
		if err != nil {
			return 0, false
		}
		return rev, true
	}
	return 0, false
}

// DocRevision parses the revision of an incoming description document.
func DocRevision(doc *discovery.RestDescription) (int64, error) {
	rev, err := strconv.ParseInt(doc.Revision, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (%s)", ErrUnknownRevision, doc.Revision, doc.ID)
	}
	return rev, nil
}
