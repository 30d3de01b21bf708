// Package enrichment looks up public candidate profiles and extracts the
// fields the analysis stage can use. Lookups are best effort: the flow
// treats any failure here as non-critical.
package enrichment

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/recruitflow/internal/fetch"
	"github.com/jonathan/recruitflow/internal/types"
)

var yearsPattern = regexp.MustCompile(`(\d{1,2})\+?\s*years?`)

// ProfileEnricher fetches a public profile URL and extracts structure.
// When UseBrowser is set, pages that come back nearly empty over plain HTTP
// are retried through a headless browser.
type ProfileEnricher struct {
	opts       *fetch.Options
	useBrowser bool
}

// NewProfileEnricher creates an enricher with default fetch options
func NewProfileEnricher(useBrowser bool) *ProfileEnricher {
	return &ProfileEnricher{
		opts:       fetch.DefaultOptions(),
		useBrowser: useBrowser,
	}
}

// Enrich fetches the profile URL and extracts candidate fields
func (e *ProfileEnricher) Enrich(ctx context.Context, profileURL string) (*types.EnrichedProfile, error) {
	result, err := fetch.URL(ctx, profileURL, e.opts)
	if err != nil {
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}

	html := result.HTML
	text, err := fetch.ExtractMainText(html, fetch.ProfilePageSelectors())
	if err != nil {
		return nil, fmt.Errorf("profile extraction failed: %w", err)
	}

	if e.useBrowser && fetch.ShouldUseBrowser(text) {
		rendered, berr := fetch.BrowserSimple(ctx, profileURL, false)
		if berr == nil {
			html = rendered
			if t, terr := fetch.ExtractMainText(html, fetch.ProfilePageSelectors()); terr == nil {
				text = t
			}
		}
	}

	profile, err := extractProfile(html)
	if err != nil {
		return nil, err
	}
	if profile.YearsExperience == 0 {
		profile.YearsExperience = yearsFromText(text)
	}
	profile.Source = profileURL
	return profile, nil
}

// extractProfile pulls headline, company and location out of profile markup
func extractProfile(html string) (*types.EnrichedProfile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("profile parse failed: %w", err)
	}

	profile := &types.EnrichedProfile{}

	headlineSelectors := []string{
		".top-card-layout__headline",
		".pv-top-card .text-body-medium",
		"[data-field='headline']",
		"h2",
	}
	for _, sel := range headlineSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			if text := strings.TrimSpace(s.Text()); text != "" {
				profile.Headline = text
				break
			}
		}
	}

	if s := doc.Find("[data-field='company'], .experience-item__subtitle, .top-card__position-info").First(); s.Length() > 0 {
		profile.Company = strings.TrimSpace(s.Text())
	}
	if s := doc.Find("[data-field='location'], .top-card__subline-item, .profile-location").First(); s.Length() > 0 {
		profile.Location = strings.TrimSpace(s.Text())
	}

	doc.Find("[data-field='skill'], .skill-pill, .skills-list li").Each(func(_ int, s *goquery.Selection) {
		if skill := strings.TrimSpace(s.Text()); skill != "" {
			profile.Skills = append(profile.Skills, skill)
		}
	})

	profile.YearsExperience = yearsFromText(doc.Text())
	return profile, nil
}

// yearsFromText finds the first "N years" mention
func yearsFromText(text string) int {
	match := yearsPattern.FindStringSubmatch(strings.ToLower(text))
	if len(match) < 2 {
		return 0
	}
	years, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return years
}
