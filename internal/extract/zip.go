package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"
)

var anyTag = regexp.MustCompile(`<[^>]*>`)

func openZip(content []byte, format string) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("extract %s: not a zip: %w", format, err)
	}
	return zr, nil
}

// readZipEntry returns the bytes of the named entry, or nil if it is absent.
func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		defer rc.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		return buf.Bytes(), nil
	}
	return nil, nil
}

// runText concatenates the inner text of every run matched by run inside
// paragraph XML. Runs split words arbitrarily, so no separator is added
// between them. When run has a second group it names a tab or break element:
// "tab" becomes a tab, anything else a space.
func runText(paragraph string, run *regexp.Regexp) string {
	var b strings.Builder
	for _, m := range run.FindAllStringSubmatch(paragraph, -1) {
		switch {
		case len(m) > 2 && m[2] == "tab":
			b.WriteByte('\t')
		case len(m) > 2 && m[2] != "":
			b.WriteByte(' ')
		default:
			b.WriteString(m[1])
		}
	}
	return html.UnescapeString(b.String())
}

// innerText strips all markup from an XML fragment.
func innerText(fragment string) string {
	return html.UnescapeString(anyTag.ReplaceAllString(fragment, ""))
}
