package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/SACCSF/linkedin"
)

// Detector identifies whether a snapshot shows a company page or a person
// profile. It checks the page URL first and falls back to layout markers
// unique to each page type.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the kind of profile it shows.
// Returns KindUnknown if the kind cannot be determined.
func (d *Detector) Detect(content []byte) linkedin.Kind {
	decoded, err := decode(content)
	if err != nil {
		return linkedin.KindUnknown
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return linkedin.KindUnknown
	}
	return d.detect(doc)
}

// detect returns the kind of profile an already parsed document shows.
func (d *Detector) detect(doc *goquery.Document) linkedin.Kind {
	// The canonical URL is the most reliable hint when present.
	if kind := kindFromURL(doc.Find("link[rel=canonical]").AttrOr("href", "")); kind != linkedin.KindUnknown {
		return kind
	}
	if kind := kindFromURL(doc.Find("meta[property='og:url']").AttrOr("content", "")); kind != linkedin.KindUnknown {
		return kind
	}

	if d.hasSelector(doc, ".org-top-card") ||
		d.hasSelector(doc, "[data-test-id^=about-us__]") ||
		d.hasSelector(doc, "section.org-about-module") {
		return linkedin.KindCompany
	}

	if d.hasSelector(doc, ".pv-top-card") ||
		d.hasSelector(doc, "section[data-section=experience]") ||
		d.hasSelector(doc, "[data-section=currentPositionsDetails]") {
		return linkedin.KindPerson
	}

	return linkedin.KindUnknown
}

// kindFromURL maps linkedin.com/company/... and linkedin.com/in/... paths.
func kindFromURL(raw string) linkedin.Kind {
	if raw == "" {
		return linkedin.KindUnknown
	}
	u, err := url.Parse(raw)
	if err != nil || !linkedin.IsLinkedInHost(u.Hostname()) {
		return linkedin.KindUnknown
	}

	switch {
	case strings.HasPrefix(u.Path, "/company/"), strings.HasPrefix(u.Path, "/school/"):
		return linkedin.KindCompany
	case strings.HasPrefix(u.Path, "/in/"), strings.HasPrefix(u.Path, "/pub/"):
		return linkedin.KindPerson
	}
	return linkedin.KindUnknown
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
