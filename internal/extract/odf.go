package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const odfContentPath = "content.xml"

var (
	// odfBlock matches text:p and text:h elements, including self-closing ones.
	odfBlock = regexp.MustCompile(`(?s)<text:(?:p|h)(?:\s[^>]*?)?(?:/>|>.*?</text:(?:p|h)>)`)
	odfRow   = regexp.MustCompile(`(?s)<table:table-row(?:\s[^>]*)?>.*?</table:table-row>`)
	odfSpace = regexp.MustCompile(`<text:(tab|line-break|s)(?:\s[^>]*?)?/>`)
	odfCount = regexp.MustCompile(`text:c="(\d+)"`)
	odfCell  = regexp.MustCompile(`(?s)<table:(?:covered-)?table-cell(?:\s[^>]*?)?(?:/>|>.*?</table:(?:covered-)?table-cell>)`)
)

func readODFContent(content []byte, format string) (string, error) {
	zr, err := openZip(content, format)
	if err != nil {
		return "", err
	}
	data, err := readZipEntry(zr, odfContentPath)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", format, err)
	}
	if data == nil {
		return "", fmt.Errorf("extract %s: %s not found", format, odfContentPath)
	}
	return string(data), nil
}

// odfText returns the text of an ODF paragraph or heading. Tabs, line breaks
// and space runs are elements in ODF, so they are expanded before the
// remaining markup is stripped.
func odfText(block string) string {
	expanded := odfSpace.ReplaceAllStringFunc(block, func(el string) string {
		switch odfSpace.FindStringSubmatch(el)[1] {
		case "tab":
			return "\t"
		case "line-break":
			return " "
		}
		n := 1
		if m := odfCount.FindStringSubmatch(el); m != nil {
			if c, err := strconv.Atoi(m[1]); err == nil && c > 0 {
				n = c
			}
		}
		return strings.Repeat(" ", n)
	})
	return innerText(expanded)
}

// extractODFText handles .odt and .odp: one line per paragraph or heading.
func extractODFText(content []byte) (string, error) {
	xml, err := readODFContent(content, "ODF")
	if err != nil {
		return "", err
	}
	blocks := odfBlock.FindAllString(xml, -1)
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, odfText(b))
	}
	return strings.Join(lines, "\n"), nil
}

// extractODS emits one tab-joined line per table row.
func extractODS(content []byte) (string, error) {
	xml, err := readODFContent(content, "ODS")
	if err != nil {
		return "", err
	}
	rows := odfRow.FindAllString(xml, -1)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := odfCell.FindAllString(row, -1)
		values := make([]string, 0, len(cells))
		for _, cell := range cells {
			var parts []string
			for _, b := range odfBlock.FindAllString(cell, -1) {
				parts = append(parts, odfText(b))
			}
			values = append(values, strings.Join(parts, " "))
		}
		lines = append(lines, strings.TrimRight(strings.Join(values, "\t"), "\t"))
	}
	return strings.Join(lines, "\n"), nil
}
