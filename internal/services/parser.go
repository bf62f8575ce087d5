package services

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

type DocumentParserService interface {
	ExtractText(filePath string) (string, error)
	ExtractTextWithMetaData(filePath string) (*DocumentContent, error)
}

type DocumentContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type documentParserService struct{}

func NewDocumentParserService() DocumentParserService {
	return &documentParserService{}
}

// ExtractText pulls plain text from a PDF or DOCX file based on its extension.
func (p *documentParserService) ExtractText(filePath string) (string, error) {
	content, err := p.ExtractTextWithMetaData(filePath)
	if err != nil {
		return "", err
	}

	return content.Text, nil
}

func (p *documentParserService) ExtractTextWithMetaData(filePath string) (*DocumentContent, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return p.extractPDF(filePath)
	case ".docx":
		return p.extractDOCX(filePath)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

func (p *documentParserService) extractPDF(filePath string) (*DocumentContent, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Log error but continue with other pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content found in PDF")
	}

	return &DocumentContent{
		Text:      text,
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}

// extractDOCX reads word/document.xml out of the docx archive and collects the
// text runs, inserting a newline per paragraph.
func (p *documentParserService) extractDOCX(filePath string) (*DocumentContent, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer reader.Close()

	var docFile *zip.File
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("invalid DOCX: missing word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read DOCX content: %w", err)
	}
	defer rc.Close()

	text, err := decodeDOCXBody(rc)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content found in DOCX")
	}

	return &DocumentContent{
		Text:      text,
		PageCount: 1,
		FilePath:  filePath,
	}, nil
}

func decodeDOCXBody(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var textBuilder strings.Builder
	var inText bool

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse DOCX XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				textBuilder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				textBuilder.Write(t)
			}
		}
	}

	return textBuilder.String(), nil
}

// CleanText removes excessive whitespace and blank lines.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
