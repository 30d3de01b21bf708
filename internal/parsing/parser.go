// Package parsing extracts structured candidate data from resume files.
// Plain-text and HTML resumes are supported; contact details come from
// regex extraction and skills from a keyword dictionary.
package parsing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/recruitflow/internal/types"
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	linkedinPattern = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/in/[A-Za-z0-9_-]+`)
	namePattern     = regexp.MustCompile(`[^a-zA-Z\s]`)

	// Ordered most to least specific; the first match wins
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	}
)

// commonSkills is the keyword dictionary matched against resume text
var commonSkills = []string{
	"python", "java", "javascript", "typescript", "golang", "react", "angular", "vue",
	"node.js", "django", "flask", "fastapi", "sql", "postgresql", "mysql",
	"mongodb", "redis", "docker", "kubernetes", "aws", "azure", "gcp",
	"machine learning", "deep learning", "nlp", "computer vision",
	"git", "agile", "scrum", "leadership", "communication", "teamwork",
}

// ResumeParser reads resume files and extracts candidate structure
type ResumeParser struct{}

// NewResumeParser creates a parser
func NewResumeParser() *ResumeParser {
	return &ResumeParser{}
}

// Parse reads the resume at path and extracts structured data. Supported
// formats are .txt, .md, .html and .htm; anything else is an error.
func (p *ResumeParser) Parse(ctx context.Context, path string) (*types.ParsedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		text = string(data)
	case ".html", ".htm":
		text, err = extractHTMLText(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML resume: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported resume format: %s", filepath.Ext(path))
	}

	return p.ParseText(text), nil
}

// ParseText extracts candidate structure from already-decoded resume text
func (p *ResumeParser) ParseText(text string) *types.ParsedResume {
	return &types.ParsedResume{
		RawText: text,
		Name:    extractName(text),
		ContactInfo: types.ContactInfo{
			Email:    emailPattern.FindString(text),
			Phone:    extractPhone(text),
			LinkedIn: linkedinPattern.FindString(text),
		},
		Skills:  extractSkills(text),
		Summary: extractSummary(text),
	}
}

// extractHTMLText strips markup and returns visible text, one block per line
func extractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style").Remove()

	var lines []string
	doc.Find("h1, h2, h3, p, li, a").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			lines = append(lines, text)
		}
		if href, ok := sel.Attr("href"); ok && strings.Contains(href, "linkedin.com/in/") {
			lines = append(lines, href)
		}
	})
	if len(lines) == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.Join(lines, "\n"), nil
}

// extractName uses the first-line heuristic common to resume formats: a
// short line of plain letters is taken as the candidate's name.
func extractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(strings.Fields(line)) <= 4 && !namePattern.MatchString(line) {
			return line
		}
		return ""
	}
	return ""
}

func extractPhone(text string) string {
	for _, pattern := range phonePatterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

func extractSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, skill := range commonSkills {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// extractSummary returns the text under a Summary/Objective heading, up to
// the next blank line.
func extractSummary(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		header := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(line, ":")))
		if header != "summary" && header != "objective" && header != "professional summary" {
			continue
		}
		var body []string
		for _, next := range lines[i+1:] {
			next = strings.TrimSpace(next)
			if next == "" {
				break
			}
			body = append(body, next)
		}
		return strings.Join(body, " ")
	}
	return ""
}
