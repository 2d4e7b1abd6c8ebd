// Package goquery implements field extraction and page-kind detection for
// saved LinkedIn snapshots using goquery and compiled cascadia selectors.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/SACCSF/linkedin"
	"github.com/andybalholm/cascadia"
)

var _ linkedin.FieldExtractor = (*Extractor)(nil)

// Extractor maps HTML snapshots to raw field values according to a
// SelectorTable. Selectors are compiled once, so an Extractor is safe to
// share between goroutines.
type Extractor struct {
	kind      linkedin.Kind
	multiple  bool
	minValues int
	fields    []compiledField
	sections  []compiledSection
	detector  *Detector
}

type compiledField struct {
	name     string
	locators []compiledLocator
}

type compiledSection struct {
	name   string
	blocks []cascadia.Selector
	fields []compiledField
}

type compiledLocator struct {
	linkedin.Locator
	sel  cascadia.Selector
	path []string
}

// NewExtractor validates and compiles table.
// Returns EINVALID if the table or one of its selectors is invalid.
func NewExtractor(table *linkedin.SelectorTable) (*Extractor, error) {
	if table == nil {
		return nil, linkedin.Errorf(linkedin.EINVALID, "selector table required")
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	e := &Extractor{
		kind:      table.Kind,
		multiple:  table.Multiple,
		minValues: max(table.MinValues, 1),
		detector:  NewDetector(),
	}
	for _, rule := range table.Fields {
		f, err := compileField(rule)
		if err != nil {
			return nil, err
		}
		e.fields = append(e.fields, f)
	}
	for _, rule := range table.Sections {
		s := compiledSection{name: rule.Section}
		for _, css := range rule.Blocks {
			sel, err := cascadia.Compile(css)
			if err != nil {
				return nil, linkedin.Errorf(linkedin.EINVALID, "section %q: invalid selector %q: %v", rule.Section, css, err)
			}
			s.blocks = append(s.blocks, sel)
		}
		for _, fr := range rule.Fields {
			f, err := compileField(fr)
			if err != nil {
				return nil, linkedin.Errorf(linkedin.EINVALID, "section %q: %s", rule.Section, linkedin.ErrorMessage(err))
			}
			s.fields = append(s.fields, f)
		}
		e.sections = append(e.sections, s)
	}
	return e, nil
}

func compileField(rule linkedin.FieldRule) (compiledField, error) {
	f := compiledField{name: rule.Field}
	for _, loc := range rule.Locators {
		cl := compiledLocator{Locator: loc}
		if loc.JSON != "" {
			cl.path = strings.Split(loc.JSON, ".")
		} else {
			sel, err := cascadia.Compile(loc.CSS)
			if err != nil {
				return f, linkedin.Errorf(linkedin.EINVALID, "field %q: invalid selector %q: %v", rule.Field, loc.CSS, err)
			}
			cl.sel = sel
		}
		f.locators = append(f.locators, cl)
	}
	return f, nil
}

// Kind returns the entity kind of the compiled table.
func (e *Extractor) Kind() linkedin.Kind {
	return e.kind
}

// Extract parses content and locates every field and section of the table.
func (e *Extractor) Extract(content []byte) (*linkedin.RawRecord, error) {
	doc, err := parse(content)
	if err != nil {
		return nil, err
	}
	return e.record(doc), nil
}

// ExtractAll parses content once, detects the page kind and returns one
// record per embedded entity when the table allows several and the page,
// not being a single profile, lists more than one. Otherwise it returns
// the single record Extract would.
func (e *Extractor) ExtractAll(content []byte) (*linkedin.ExtractResult, error) {
	doc, err := parse(content)
	if err != nil {
		return nil, err
	}

	res := &linkedin.ExtractResult{Kind: e.detector.detect(doc)}
	if e.multiple && res.Kind == linkedin.KindUnknown {
		var kept []map[string]any
		dropped := 0
		for _, entity := range embeddedEntities(doc) {
			switch n := e.resolvedFields(entity); {
			case n >= e.minValues:
				kept = append(kept, entity)
			case n > 0:
				dropped++
			}
		}
		if len(kept) > 1 {
			for _, entity := range kept {
				res.Records = append(res.Records, e.entityRecord(entity))
			}
			res.Dropped = dropped
			return res, nil
		}
	}

	res.Records = []*linkedin.RawRecord{e.record(doc)}
	return res, nil
}

func parse(content []byte) (*goquery.Document, error) {
	decoded, err := decode(content)
	if err != nil {
		return nil, linkedin.Errorf(linkedin.EUNPARSEABLE, "cannot decode document: %v", err)
	}
	if err := checkMarkup(decoded); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return nil, linkedin.Errorf(linkedin.EUNPARSEABLE, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// record locates every field in doc, reading JSON locators from the
// embedded entity with the most values.
func (e *Extractor) record(doc *goquery.Document) *linkedin.RawRecord {
	entity := chooseEntity(embeddedEntities(doc), e.jsonPaths())

	rec := linkedin.NewRawRecord()
	for _, f := range e.fields {
		rec.Fields[f.name] = locate(doc.Selection, entity, f.locators)
	}
	for _, s := range e.sections {
		rec.Sections[s.name] = extractSection(doc.Selection, s)
	}
	return rec
}

// entityRecord builds a record from one embedded entity alone. Markup
// locators are skipped since the page markup is shared by all entities.
func (e *Extractor) entityRecord(entity map[string]any) *linkedin.RawRecord {
	rec := linkedin.NewRawRecord()
	for _, f := range e.fields {
		rec.Fields[f.name] = locateJSON(entity, f.locators)
	}
	for _, s := range e.sections {
		rec.Sections[s.name] = []map[string]string{}
	}
	return rec
}

// resolvedFields counts the fields whose JSON locators give a value for
// entity.
func (e *Extractor) resolvedFields(entity map[string]any) int {
	n := 0
	for _, f := range e.fields {
		if locateJSON(entity, f.locators) != "" {
			n++
		}
	}
	return n
}

// jsonPaths returns every JSON locator path of the table's top-level fields.
func (e *Extractor) jsonPaths() [][]string {
	var paths [][]string
	for _, f := range e.fields {
		for _, loc := range f.locators {
			if loc.path != nil {
				paths = append(paths, loc.path)
			}
		}
	}
	return paths
}

func extractSection(root *goquery.Selection, s compiledSection) []map[string]string {
	blocks := []map[string]string{}
	for _, sel := range s.blocks {
		matched := root.FindMatcher(sel)
		if matched.Length() == 0 {
			continue
		}
		for _, block := range matched.EachIter() {
			values := make(map[string]string, len(s.fields))
			for _, f := range s.fields {
				values[f.name] = locate(block, nil, f.locators)
			}
			blocks = append(blocks, values)
		}
		break
	}
	return blocks
}

func locateJSON(entity map[string]any, locators []compiledLocator) string {
	for _, loc := range locators {
		if loc.path == nil {
			continue
		}
		if v := lookupString(entity, loc.path); v != "" {
			return v
		}
	}
	return ""
}

// locate returns the first non-empty value produced by locators, or "".
func locate(root *goquery.Selection, entity map[string]any, locators []compiledLocator) string {
	for _, loc := range locators {
		var v string
		if loc.path != nil {
			v = lookupString(entity, loc.path)
		} else {
			v = locateCSS(root, loc)
		}
		if v != "" {
			return v
		}
	}
	return ""
}

func locateCSS(root *goquery.Selection, loc compiledLocator) string {
	for _, candidate := range root.FindMatcher(loc.sel).EachIter() {
		text := nodeText(candidate)
		if loc.Contains != "" && !containsFold(text, loc.Contains) {
			continue
		}

		var v string
		switch {
		case loc.Label != "":
			if !strings.EqualFold(strings.TrimSuffix(text, ":"), loc.Label) {
				continue
			}
			v = nodeText(candidate.Next())
		case loc.Attr != "":
			v = linkedin.CollapseSpace(candidate.AttrOr(loc.Attr, ""))
		default:
			v = text
		}
		if v != "" {
			return v
		}
	}
	return ""
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
