package linkedin

import "strings"

// Raw field names for person snapshots.
const (
	PersonName        = "name"
	PersonHeadline    = "headline"
	PersonPosition    = "position"
	PersonCompany     = "company"
	PersonLocation    = "location"
	PersonLinkedInURL = "linkedinUrl"

	SectionEducation  = "education"
	SectionExperience = "experience"
)

// Raw field names inside education blocks.
const (
	EducationSchool       = "school"
	EducationDegree       = "degree"
	EducationFieldOfStudy = "fieldOfStudy"
	EducationPeriod       = "period"
	EducationStartYear    = "startYear"
	EducationEndYear      = "endYear"
)

// Raw field names inside experience blocks.
const (
	ExperienceTitle          = "title"
	ExperienceCompany        = "company"
	ExperienceEmploymentType = "employmentType"
	ExperienceLocation       = "location"
	ExperiencePeriod         = "period"
	ExperienceStart          = "start"
	ExperienceEnd            = "end"
	ExperienceDuration       = "duration"
)

// positionLabels are prefixes LinkedIn puts in front of the current position
// in search result summaries ("Current: Engineer at Acme").
var positionLabels = []string{"Current:", "Aktuell:", "Actuel :", "Actuel:"}

// Person is the normalized record for one person profile.
type Person struct {
	Name        string       `json:"name" validate:"required"`
	Headline    string       `json:"headline"`
	Position    string       `json:"position"`
	Company     string       `json:"company"`
	Location    string       `json:"location"`
	LinkedInURL string       `json:"linkedinUrl" validate:"omitempty,url"`
	Education   []Education  `json:"education" validate:"dive"`
	Experience  []Experience `json:"experience" validate:"dive"`
}

// Education is one entry of a person's education section.
type Education struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    int    `json:"startYear" validate:"omitempty,gte=1900,lte=2100"`
	EndYear      int    `json:"endYear" validate:"omitempty,gte=1900,lte=2100"`
}

// Experience is one entry of a person's experience section.
type Experience struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	EmploymentType string `json:"employmentType"`
	Location       string `json:"location"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Duration       string `json:"duration"`
}

// EntityName returns the person's full name.
func (p Person) EntityName() string {
	return p.Name
}

// FillFrom returns p with its empty fields taken from older.
// Sections are taken as a whole: an empty section is replaced by the
// older record's section, a non-empty one is kept.
func (p Person) FillFrom(older Person) Person {
	fillString(&p.Name, older.Name)
	fillString(&p.Headline, older.Headline)
	fillString(&p.Position, older.Position)
	fillString(&p.Company, older.Company)
	fillString(&p.Location, older.Location)
	fillString(&p.LinkedInURL, older.LinkedInURL)
	if len(p.Education) == 0 {
		p.Education = append([]Education{}, older.Education...)
	}
	if len(p.Experience) == 0 {
		p.Experience = append([]Experience{}, older.Experience...)
	}
	return p
}

// Raw converts p back into the raw field shape produced by extraction.
// NormalizePerson(p.Raw()) == p for any normalized p.
func (p Person) Raw() *RawRecord {
	r := NewRawRecord()
	r.Fields[PersonName] = p.Name
	r.Fields[PersonHeadline] = p.Headline
	r.Fields[PersonPosition] = p.Position
	r.Fields[PersonCompany] = p.Company
	r.Fields[PersonLocation] = p.Location
	r.Fields[PersonLinkedInURL] = p.LinkedInURL

	education := make([]map[string]string, 0, len(p.Education))
	for _, e := range p.Education {
		education = append(education, map[string]string{
			EducationSchool:       e.School,
			EducationDegree:       e.Degree,
			EducationFieldOfStudy: e.FieldOfStudy,
			EducationStartYear:    itoa(e.StartYear),
			EducationEndYear:      itoa(e.EndYear),
		})
	}
	r.Sections[SectionEducation] = education

	experience := make([]map[string]string, 0, len(p.Experience))
	for _, e := range p.Experience {
		experience = append(experience, map[string]string{
			ExperienceTitle:          e.Title,
			ExperienceCompany:        e.Company,
			ExperienceEmploymentType: e.EmploymentType,
			ExperienceLocation:       e.Location,
			ExperienceStart:          e.Start,
			ExperienceEnd:            e.End,
			ExperienceDuration:       e.Duration,
		})
	}
	r.Sections[SectionExperience] = experience
	return r
}

// NormalizePerson assembles a Person from raw extracted strings.
func NormalizePerson(raw *RawRecord) Person {
	p := Person{
		Name:        CollapseSpace(raw.Get(PersonName)),
		Headline:    CollapseSpace(raw.Get(PersonHeadline)),
		Company:     CollapseSpace(raw.Get(PersonCompany)),
		Location:    CollapseSpace(raw.Get(PersonLocation)),
		LinkedInURL: NormalizeURL(raw.Get(PersonLinkedInURL)),
		Education:   []Education{},
		Experience:  []Experience{},
	}

	position := stripPositionLabel(CollapseSpace(raw.Get(PersonPosition)))
	if position == "" && strings.Contains(p.Headline, AtDelimiter) {
		position = p.Headline
	}
	if p.Company == "" {
		parts := SplitCompound(position, AtDelimiter, 2)
		position, p.Company = parts[0], parts[1]
	}
	p.Position = position

	for _, block := range raw.Section(SectionEducation) {
		if e := normalizeEducation(block); e != (Education{}) {
			p.Education = append(p.Education, e)
		}
	}
	for _, block := range raw.Section(SectionExperience) {
		if e := normalizeExperience(block); e != (Experience{}) {
			p.Experience = append(p.Experience, e)
		}
	}
	return p
}

func normalizeEducation(block map[string]string) Education {
	e := Education{
		School:       CollapseSpace(block[EducationSchool]),
		Degree:       CollapseSpace(block[EducationDegree]),
		FieldOfStudy: CollapseSpace(block[EducationFieldOfStudy]),
		StartYear:    parseYearIn(block[EducationStartYear], MinEducationYear),
		EndYear:      parseYearIn(block[EducationEndYear], MinEducationYear),
	}
	if e.FieldOfStudy == "" {
		parts := SplitCompound(e.Degree, CommaDelimiter, 2)
		e.Degree, e.FieldOfStudy = parts[0], parts[1]
	}
	if e.StartYear == 0 && e.EndYear == 0 {
		period := normalizeRange(block[EducationPeriod])
		parts := SplitCompound(period, RangeDelimiter, 2)
		e.StartYear = parseYearIn(parts[0], MinEducationYear)
		e.EndYear = parseYearIn(parts[1], MinEducationYear)
	}
	return e
}

func normalizeExperience(block map[string]string) Experience {
	e := Experience{
		Title:          CollapseSpace(block[ExperienceTitle]),
		Company:        CollapseSpace(block[ExperienceCompany]),
		EmploymentType: CollapseSpace(block[ExperienceEmploymentType]),
		Location:       CollapseSpace(block[ExperienceLocation]),
		Start:          CollapseSpace(block[ExperienceStart]),
		End:            CollapseSpace(block[ExperienceEnd]),
		Duration:       CollapseSpace(block[ExperienceDuration]),
	}
	if e.EmploymentType == "" {
		parts := SplitCompound(e.Company, DotDelimiter, 2)
		e.Company, e.EmploymentType = parts[0], parts[1]
	}
	if e.Start == "" && e.End == "" && e.Duration == "" {
		parts := SplitCompound(normalizeRange(block[ExperiencePeriod]), DotDelimiter, 2)
		dates := SplitCompound(parts[0], RangeDelimiter, 2)
		e.Start, e.End, e.Duration = dates[0], dates[1], parts[1]
	}
	return e
}

// normalizeRange rewrites en dash ranges ("2015 – 2019") to the ASCII form.
func normalizeRange(s string) string {
	return strings.ReplaceAll(CollapseSpace(s), enDashDelimiter, RangeDelimiter)
}

func stripPositionLabel(s string) string {
	for _, label := range positionLabels {
		if strings.HasPrefix(s, label) {
			return strings.TrimSpace(strings.TrimPrefix(s, label))
		}
	}
	return s
}
