// Package extractor converts uploaded file bytes into two aligned
// representations: plain text for embedding and display content for rendering.
package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/iepirkumi/tenderlens/internal/port"
)

// Block is one source paragraph carrying both of its renderings. Rich-text
// extraction produces blocks in a single pass over the document, so the plain
// and display forms of a block always come from the same source offset.
type Block struct {
	Plain   string
	Display string
}

// Extraction is the result of extracting one file.
type Extraction struct {
	PlainText string
	Display   string
	Blocks    []Block
	HasMarkup bool
}

// Extract converts raw file bytes into an Extraction based on the file
// extension. Supported kinds: .txt, .md (decoded verbatim) and .docx
// (converted to HTML display blocks plus a markup-free plain form).
func Extract(fileName string, data []byte) (*Extraction, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".txt", ".md":
		return extractText(data)
	case ".docx":
		return extractDocx(data)
	default:
		return nil, fmt.Errorf("%w: %s (supported: .docx, .txt, .md)", port.ErrUnsupportedFormat, ext)
	}
}

func extractText(data []byte) (*Extraction, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: not valid UTF-8", port.ErrInvalidEncoding)
	}
	text := string(data)
	return &Extraction{PlainText: text, Display: text}, nil
}

func extractDocx(data []byte) (*Extraction, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a DOCX container: %v", port.ErrExtractionFailed, err)
	}

	content, err := readArchiveFile(reader, "word/document.xml")
	if err != nil {
		return nil, err
	}

	blocks, err := parseDocumentXML(content)
	if err != nil {
		return nil, err
	}

	plains := make([]string, len(blocks))
	displays := make([]string, len(blocks))
	for i, b := range blocks {
		plains[i] = b.Plain
		displays[i] = b.Display
	}

	return &Extraction{
		PlainText: strings.Join(plains, "\n\n"),
		Display:   strings.Join(displays, "\n"),
		Blocks:    blocks,
		HasMarkup: true,
	}, nil
}

func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", port.ErrExtractionFailed, name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", port.ErrExtractionFailed, name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%w: missing %s", port.ErrExtractionFailed, name)
}

// documentXML mirrors the parts of word/document.xml we care about. Body
// children stay in document order: paragraph fields bind for <w:p>, row fields
// for <w:tbl>, anything else (sectPr, bookmarks) carries neither and is
// skipped.
type documentXML struct {
	Body struct {
		Items []bodyItemXML `xml:",any"`
	} `xml:"body"`
}

type bodyItemXML struct {
	XMLName xml.Name
	paragraphXML
	Rows []tableRowXML `xml:"tr"`
}

type paragraphXML struct {
	Props struct {
		Style struct {
			Val string `xml:"val,attr"`
		} `xml:"pStyle"`
	} `xml:"pPr"`
	Runs []runXML `xml:"r"`
}

type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type runXML struct {
	Text []textXML `xml:"t"`
}

type textXML struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML walks the body elements once in document order, emitting
// one Block per non-empty paragraph and one per table. Heading styles map to
// <h1>..<h3>, other paragraphs to <p>.
func parseDocumentXML(content []byte) ([]Block, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse document.xml: %v", port.ErrExtractionFailed, err)
	}

	blocks := make([]Block, 0, len(doc.Body.Items))
	for _, item := range doc.Body.Items {
		switch item.XMLName.Local {
		case "p":
			if b, ok := paragraphBlock(item.paragraphXML); ok {
				blocks = append(blocks, b)
			}
		case "tbl":
			if b, ok := tableBlock(item.Rows); ok {
				blocks = append(blocks, b)
			}
		}
	}
	return blocks, nil
}

func paragraphBlock(para paragraphXML) (Block, bool) {
	plain := runText(para.Runs)
	if plain == "" {
		return Block{}, false
	}
	tag := displayTag(para.Props.Style.Val)
	return Block{
		Plain:   plain,
		Display: fmt.Sprintf("<%s>%s</%s>", tag, html.EscapeString(plain), tag),
	}, true
}

// tableBlock renders a whole table as one block so its rows stay together
// through chunking. Plain form is one line per row with cells separated by
// " | "; display form is an HTML table.
func tableBlock(rows []tableRowXML) (Block, bool) {
	var plainRows []string
	var sb strings.Builder
	sb.WriteString("<table>")
	for _, row := range rows {
		cells := make([]string, 0, len(row.Cells))
		sb.WriteString("<tr>")
		for _, cell := range row.Cells {
			var parts []string
			for _, para := range cell.Paragraphs {
				if text := runText(para.Runs); text != "" {
					parts = append(parts, text)
				}
			}
			text := strings.Join(parts, " ")
			cells = append(cells, text)
			sb.WriteString("<td>")
			sb.WriteString(html.EscapeString(text))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
		if line := strings.TrimSpace(strings.Join(cells, " | ")); line != "" {
			plainRows = append(plainRows, line)
		}
	}
	sb.WriteString("</table>")

	if len(plainRows) == 0 {
		return Block{}, false
	}
	return Block{Plain: strings.Join(plainRows, "\n"), Display: sb.String()}, true
}

func runText(runs []runXML) string {
	var sb strings.Builder
	for _, run := range runs {
		for _, text := range run.Text {
			sb.WriteString(text.Content)
		}
	}
	return strings.TrimSpace(sb.String())
}

func displayTag(style string) string {
	switch style {
	case "Title", "Heading1":
		return "h1"
	case "Heading2":
		return "h2"
	case "Heading3":
		return "h3"
	default:
		return "p"
	}
}
