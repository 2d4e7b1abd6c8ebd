package linkedin

import "strings"

// Raw field names for company snapshots.
const (
	CompanyName                = "name"
	CompanyTagline             = "tagline"
	CompanyIndustry            = "industry"
	CompanySize                = "size"
	CompanyEmployeeCountStart  = "employeeCountStart"
	CompanyEmployeeCountEnd    = "employeeCountEnd"
	CompanyHeadquarters        = "headquarters"
	CompanyHeadquartersCity    = "headquartersCity"
	CompanyHeadquartersCountry = "headquartersCountry"
	CompanyGeographicArea      = "geographicArea"
	CompanyWebsite             = "website"
	CompanyPhone               = "phone"
	CompanyFoundedYear         = "foundedYear"
	CompanyDescription         = "description"
	CompanySpecialities        = "specialities"
	CompanyFollowerCount       = "followerCount"
	CompanyLinkedInURL         = "linkedinUrl"

	// CompanyTopCard is the compound subtitle line of the page header,
	// e.g. "Software Development · Zurich, ZH · 1,234 followers".
	CompanyTopCard = "topCard"
)

// Company is the normalized record for one company page.
// Every field is always serialized so downstream consumers see a stable shape.
type Company struct {
	Name                string   `json:"name" validate:"required"`
	Tagline             string   `json:"tagline"`
	Industry            string   `json:"industry"`
	Size                string   `json:"size"`
	EmployeeCountStart  int      `json:"employeeCountStart" validate:"gte=0"`
	EmployeeCountEnd    int      `json:"employeeCountEnd" validate:"gte=0"`
	Headquarters        string   `json:"headquarters"`
	HeadquartersCity    string   `json:"headquartersCity"`
	HeadquartersCountry string   `json:"headquartersCountry"`
	GeographicArea      string   `json:"geographicArea"`
	Website             string   `json:"website" validate:"omitempty,url"`
	Phone               string   `json:"phone"`
	FoundedYear         int      `json:"foundedYear" validate:"omitempty,gte=1600,lte=2100"`
	Description         string   `json:"description"`
	Specialities        []string `json:"specialities"`
	FollowerCount       int      `json:"followerCount" validate:"gte=0"`
	LinkedInURL         string   `json:"linkedinUrl" validate:"omitempty,url"`
}

// EntityName returns the company name.
func (c Company) EntityName() string {
	return c.Name
}

// FillFrom returns c with its empty fields taken from older.
func (c Company) FillFrom(older Company) Company {
	fillString(&c.Name, older.Name)
	fillString(&c.Tagline, older.Tagline)
	fillString(&c.Industry, older.Industry)
	fillString(&c.Size, older.Size)
	fillInt(&c.EmployeeCountStart, older.EmployeeCountStart)
	fillInt(&c.EmployeeCountEnd, older.EmployeeCountEnd)
	fillString(&c.Headquarters, older.Headquarters)
	fillString(&c.HeadquartersCity, older.HeadquartersCity)
	fillString(&c.HeadquartersCountry, older.HeadquartersCountry)
	fillString(&c.GeographicArea, older.GeographicArea)
	fillString(&c.Website, older.Website)
	fillString(&c.Phone, older.Phone)
	fillInt(&c.FoundedYear, older.FoundedYear)
	fillString(&c.Description, older.Description)
	if len(c.Specialities) == 0 && len(older.Specialities) > 0 {
		c.Specialities = append([]string{}, older.Specialities...)
	}
	fillInt(&c.FollowerCount, older.FollowerCount)
	fillString(&c.LinkedInURL, older.LinkedInURL)
	if c.Specialities == nil {
		c.Specialities = []string{}
	}
	return c
}

// Raw converts c back into the raw field shape produced by extraction.
// NormalizeCompany(c.Raw()) == c for any normalized c.
func (c Company) Raw() *RawRecord {
	r := NewRawRecord()
	r.Fields[CompanyName] = c.Name
	r.Fields[CompanyTagline] = c.Tagline
	r.Fields[CompanyIndustry] = c.Industry
	r.Fields[CompanySize] = c.Size
	r.Fields[CompanyEmployeeCountStart] = itoa(c.EmployeeCountStart)
	r.Fields[CompanyEmployeeCountEnd] = itoa(c.EmployeeCountEnd)
	r.Fields[CompanyHeadquarters] = c.Headquarters
	r.Fields[CompanyHeadquartersCity] = c.HeadquartersCity
	r.Fields[CompanyHeadquartersCountry] = c.HeadquartersCountry
	r.Fields[CompanyGeographicArea] = c.GeographicArea
	r.Fields[CompanyWebsite] = c.Website
	r.Fields[CompanyPhone] = c.Phone
	r.Fields[CompanyFoundedYear] = itoa(c.FoundedYear)
	r.Fields[CompanyDescription] = c.Description
	r.Fields[CompanySpecialities] = strings.Join(c.Specialities, ListDelimiter+" ")
	r.Fields[CompanyFollowerCount] = itoa(c.FollowerCount)
	r.Fields[CompanyLinkedInURL] = c.LinkedInURL
	r.Fields[CompanyTopCard] = ""
	return r
}

// NormalizeCompany assembles a Company from raw extracted strings.
// Values given by a dedicated field take precedence over values split out
// of the compound top card line.
func NormalizeCompany(raw *RawRecord) Company {
	c := Company{
		Name:                CollapseSpace(raw.Get(CompanyName)),
		Tagline:             CollapseSpace(raw.Get(CompanyTagline)),
		Industry:            CollapseSpace(raw.Get(CompanyIndustry)),
		Size:                CollapseSpace(raw.Get(CompanySize)),
		EmployeeCountStart:  ParseCount(raw.Get(CompanyEmployeeCountStart)),
		EmployeeCountEnd:    ParseCount(raw.Get(CompanyEmployeeCountEnd)),
		Headquarters:        CollapseSpace(raw.Get(CompanyHeadquarters)),
		HeadquartersCity:    CollapseSpace(raw.Get(CompanyHeadquartersCity)),
		HeadquartersCountry: CollapseSpace(raw.Get(CompanyHeadquartersCountry)),
		GeographicArea:      CollapseSpace(raw.Get(CompanyGeographicArea)),
		Website:             NormalizeURL(raw.Get(CompanyWebsite)),
		Phone:               CollapseSpace(raw.Get(CompanyPhone)),
		FoundedYear:         parseYearIn(raw.Get(CompanyFoundedYear), MinFoundedYear),
		Description:         CollapseSpace(raw.Get(CompanyDescription)),
		Specialities:        splitList(raw.Get(CompanySpecialities)),
		FollowerCount:       ParseCount(raw.Get(CompanyFollowerCount)),
		LinkedInURL:         NormalizeURL(raw.Get(CompanyLinkedInURL)),
	}

	if topCard := CollapseSpace(raw.Get(CompanyTopCard)); topCard != "" {
		var positional []string
		for _, part := range SplitCompound(topCard, DotDelimiter, 3) {
			switch {
			case part == "":
			case strings.Contains(strings.ToLower(part), "follower"):
				if c.FollowerCount == 0 {
					c.FollowerCount = ParseCount(part)
				}
			default:
				positional = append(positional, part)
			}
		}
		if len(positional) > 0 && c.Industry == "" {
			c.Industry = positional[0]
		}
		if len(positional) > 1 && c.Headquarters == "" {
			c.Headquarters = positional[1]
		}
	}

	if c.EmployeeCountStart == 0 && c.EmployeeCountEnd == 0 && c.Size != "" {
		c.EmployeeCountStart, c.EmployeeCountEnd = ParseRange(c.Size)
	}

	if c.Headquarters == "" {
		var parts []string
		for _, p := range []string{c.HeadquartersCity, c.GeographicArea, c.HeadquartersCountry} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		c.Headquarters = strings.Join(parts, CommaDelimiter)
	}

	return c
}

func fillString(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}

func fillInt(dst *int, src int) {
	if *dst == 0 {
		*dst = src
	}
}
