package parsing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe

Contact
jane.doe@example.com
+1 (555) 123-4567
https://linkedin.com/in/janedoe

Summary:
Backend engineer with eight years building data platforms.

Skills
Python, PostgreSQL, Docker, Kubernetes, AWS
`

func writeResume(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseTextResume(t *testing.T) {
	parser := NewResumeParser()
	path := writeResume(t, "resume.txt", sampleResume)

	parsed, err := parser.Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", parsed.Name)
	assert.Equal(t, "jane.doe@example.com", parsed.ContactInfo.Email)
	assert.Equal(t, "+1 (555) 123-4567", parsed.ContactInfo.Phone)
	assert.Equal(t, "https://linkedin.com/in/janedoe", parsed.ContactInfo.LinkedIn)
	assert.Equal(t, "Backend engineer with eight years building data platforms.", parsed.Summary)

	assert.Contains(t, parsed.Skills, "python")
	assert.Contains(t, parsed.Skills, "postgresql")
	assert.Contains(t, parsed.Skills, "docker")
	assert.Contains(t, parsed.Skills, "kubernetes")
	assert.Contains(t, parsed.Skills, "aws")
}

func TestParseHTMLResume(t *testing.T) {
	parser := NewResumeParser()
	html := `<html><head><style>body{color:red}</style></head><body>
		<h1>John Smith</h1>
		<p>john.smith@example.org</p>
		<p>(555) 987-6543</p>
		<a href="https://www.linkedin.com/in/johnsmith">Profile</a>
		<ul><li>Java</li><li>SQL</li><li>Redis</li></ul>
	</body></html>`
	path := writeResume(t, "resume.html", html)

	parsed, err := parser.Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "John Smith", parsed.Name)
	assert.Equal(t, "john.smith@example.org", parsed.ContactInfo.Email)
	assert.Equal(t, "(555) 987-6543", parsed.ContactInfo.Phone)
	assert.Equal(t, "https://www.linkedin.com/in/johnsmith", parsed.ContactInfo.LinkedIn)
	assert.Contains(t, parsed.Skills, "java")
	assert.Contains(t, parsed.Skills, "sql")
	assert.Contains(t, parsed.Skills, "redis")
	assert.NotContains(t, parsed.RawText, "color:red")
}

func TestParseMissingFile(t *testing.T) {
	parser := NewResumeParser()

	_, err := parser.Parse(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read resume")
}

func TestParseUnsupportedFormat(t *testing.T) {
	parser := NewResumeParser()
	path := writeResume(t, "resume.pdf", "%PDF-1.4")

	_, err := parser.Parse(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported resume format")
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain name", "Jane Doe\njane@x.com", "Jane Doe"},
		{"leading blank lines", "\n\nJohn Smith\n", "John Smith"},
		{"too many words", "Senior Staff Software Engineer Resume Draft\n", ""},
		{"contains digits", "Jane Doe 2024\n", ""},
		{"empty text", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractName(tt.text))
		})
	}
}

func TestExtractContactMissingFields(t *testing.T) {
	parsed := NewResumeParser().ParseText("Jane Doe\nNo contact details here")

	assert.Empty(t, parsed.ContactInfo.Email)
	assert.Empty(t, parsed.ContactInfo.Phone)
	assert.Empty(t, parsed.ContactInfo.LinkedIn)
	assert.Empty(t, parsed.Summary)
}
