package e2e

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SupportedFileExtensions is the list of corpus formats exercised by E2E tests.
// PDF is covered by internal/extract tests; no minimal PDF with extractable
// text is generated here.
var SupportedFileExtensions = []string{
	".txt", ".md", ".rst",
	".docx", ".odt", ".xlsx", ".pptx", ".odp", ".ods",
}

// WriteMinimalFile returns the bytes of a minimal file of the given extension
// whose extracted text is lines, one corpus line per paragraph, row or slide
// paragraph. Lines must be non-empty: presentations drop empty paragraphs.
func WriteMinimalFile(ext string, lines []string) ([]byte, error) {
	switch ext {
	case ".txt", ".md", ".rst":
		return []byte(strings.Join(lines, "\n") + "\n"), nil
	case ".docx":
		return zipEntries("word/document.xml", wrapEach(lines,
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`,
			`<w:p><w:r><w:t xml:space="preserve">`, `</w:t></w:r></w:p>`,
			`</w:body></w:document>`))
	case ".pptx":
		return zipEntries("ppt/slides/slide1.xml", wrapEach(lines,
			`<p:sld xmlns:p="p" xmlns:a="a"><p:cSld><p:spTree><p:sp><p:txBody>`,
			`<a:p><a:r><a:t>`, `</a:t></a:r></a:p>`,
			`</p:txBody></p:sp></p:spTree></p:cSld></p:sld>`))
	case ".odt", ".odp":
		return zipEntries("content.xml", wrapEach(lines,
			`<office:document-content><office:body><office:text>`,
			`<text:p>`, `</text:p>`,
			`</office:text></office:body></office:document-content>`))
	case ".ods":
		return zipEntries("content.xml", wrapEach(lines,
			`<office:document-content><office:body><office:spreadsheet><table:table>`,
			`<table:table-row><table:table-cell><text:p>`, `</text:p></table:table-cell></table:table-row>`,
			`</table:table></office:spreadsheet></office:body></office:document-content>`))
	case ".xlsx":
		return minimalXlsx(lines)
	default:
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}
}

func wrapEach(lines []string, head, open, close, tail string) string {
	var b strings.Builder
	b.WriteString(head)
	for _, l := range lines {
		b.WriteString(open)
		b.WriteString(html.EscapeString(l))
		b.WriteString(close)
	}
	b.WriteString(tail)
	return b.String()
}

func zipEntries(name, content string) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.Create(name)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func minimalXlsx(lines []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	for i, l := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue("Sheet1", cell, l); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
