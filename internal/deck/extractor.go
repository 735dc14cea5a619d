package deck

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	slideFileRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
	notesFileRe = regexp.MustCompile(`^ppt/notesSlides/notesSlide(\d+)\.xml$`)
)

// ExtractFile reads a .pptx file from disk and extracts its slides.
// A missing file yields ErrNotFound, an unreadable container ErrParse.
func ExtractFile(path string) ([]Slide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return Extract(data)
}

// Extract parses raw .pptx bytes into an ordered slide sequence.
//
// For each slide container in document order, all non-empty text lines are
// collected from all text-bearing shapes in shape order. The first line
// becomes the title and the rest become bullets. A slide with no text at all
// falls back to "Slide {index}" with no bullets; extraction itself never
// fails on an empty slide. Speaker notes, when present, are joined into the
// Notes field.
func Extract(data []byte) ([]Slide, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	slideFiles, err := numberedEntries(reader, slideFileRe)
	if err != nil {
		return nil, err
	}
	notesFiles, err := numberedEntries(reader, notesFileRe)
	if err != nil {
		return nil, err
	}

	slides := make([]Slide, 0, len(slideFiles))
	for i, file := range slideFiles {
		idx := i + 1

		lines, err := textLines(file.entry)
		if err != nil {
			return nil, err
		}

		slide := Slide{Index: idx, Bullets: []string{}}
		if len(lines) > 0 {
			slide.Title = lines[0]
			slide.Bullets = lines[1:]
		} else {
			slide.Title = fmt.Sprintf("Slide %d", idx)
		}

		// Notes slides are numbered after their slide in the container.
		if notes, ok := notesFiles.byNumber(file.number); ok {
			noteLines, err := textLines(notes)
			if err != nil {
				return nil, err
			}
			slide.Notes = strings.Join(noteLines, "\n")
		}

		slides = append(slides, slide)
	}

	return slides, nil
}

type numberedEntry struct {
	number int
	entry  *zip.File
}

type numberedEntryList []numberedEntry

func (l numberedEntryList) byNumber(n int) (*zip.File, bool) {
	for _, e := range l {
		if e.number == n {
			return e.entry, true
		}
	}
	return nil, false
}

// numberedEntries collects zip entries matching the pattern, ordered by the
// number embedded in the file name (slide10 must sort after slide2).
func numberedEntries(reader *zip.Reader, re *regexp.Regexp) (numberedEntryList, error) {
	var entries numberedEntryList
	for _, file := range reader.File {
		m := re.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad entry name %s", ErrParse, file.Name)
		}
		entries = append(entries, numberedEntry{number: n, entry: file})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].number < entries[j].number })
	return entries, nil
}

// slideXML mirrors the parts of a slide part we read: every shape's text
// body, each paragraph being a list of runs.
type slideXML struct {
	Shapes []shapeXML `xml:"cSld>spTree>sp"`
}

type shapeXML struct {
	Paragraphs []paragraphXML `xml:"txBody>p"`
}

type paragraphXML struct {
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Text string `xml:"t"`
}

// textLines extracts all non-empty text lines from one slide or notes part,
// shape by shape, paragraph by paragraph.
func textLines(file *zip.File) ([]string, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	content, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var part slideXML
	if err := xml.Unmarshal(content, &part); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var lines []string
	for _, shape := range part.Shapes {
		for _, para := range shape.Paragraphs {
			var b strings.Builder
			for _, run := range para.Runs {
				b.WriteString(run.Text)
			}
			if line := strings.TrimSpace(b.String()); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines, nil
}
