package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const pptxSlidePathPrefix = "ppt/slides/slide"

var (
	aParagraph = regexp.MustCompile(`(?s)<a:p(?:\s[^>]*?)?(?:/>|>.*?</a:p>)`)
	atTag      = regexp.MustCompile(`<a:t(?:\s[^>]*)?>([^<]*)</a:t>|<a:(br)(?:\s[^>]*)?/>`)
)

// slideNumber parses N from ppt/slides/slideN.xml; -1 when not a slide part.
func slideNumber(name string) int {
	if !strings.HasPrefix(name, pptxSlidePathPrefix) || !strings.HasSuffix(name, ".xml") {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, pptxSlidePathPrefix), ".xml"))
	if err != nil {
		return -1
	}
	return n
}

// extractPPTX emits one line per non-empty text paragraph, slides in
// numeric order.
func extractPPTX(content []byte) (string, error) {
	zr, err := openZip(content, "PPTX")
	if err != nil {
		return "", err
	}
	type slide struct {
		num  int
		name string
	}
	var slides []slide
	for _, f := range zr.File {
		if n := slideNumber(f.Name); n >= 0 {
			slides = append(slides, slide{num: n, name: f.Name})
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var lines []string
	for _, s := range slides {
		data, err := readZipEntry(zr, s.name)
		if err != nil {
			return "", fmt.Errorf("extract PPTX: %w", err)
		}
		for _, p := range aParagraph.FindAllString(string(data), -1) {
			if text := runText(p, atTag); strings.TrimSpace(text) != "" {
				lines = append(lines, text)
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}
