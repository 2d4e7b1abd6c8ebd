package goquery

import "github.com/SACCSF/linkedin"

// DefaultTable returns the built-in selector table for kind, or nil if kind
// is not an entity kind.
func DefaultTable(kind linkedin.Kind) *linkedin.SelectorTable {
	switch kind {
	case linkedin.KindCompany:
		return CompanyTable()
	case linkedin.KindPerson:
		return PersonTable()
	}
	return nil
}

func css(selector string) linkedin.Locator {
	return linkedin.Locator{CSS: selector}
}

func attr(selector, name string) linkedin.Locator {
	return linkedin.Locator{CSS: selector, Attr: name}
}

func label(text string) linkedin.Locator {
	return linkedin.Locator{CSS: "dt", Label: text}
}

func jsonPath(path string) linkedin.Locator {
	return linkedin.Locator{JSON: path}
}

func field(name string, locators ...linkedin.Locator) linkedin.FieldRule {
	return linkedin.FieldRule{Field: name, Locators: locators}
}

// CompanyTable returns the selectors for company pages. Embedded JSON is
// preferred, followed by the logged-in and the public page layouts.
func CompanyTable() *linkedin.SelectorTable {
	return &linkedin.SelectorTable{
		Kind: linkedin.KindCompany,
		Fields: []linkedin.FieldRule{
			field(linkedin.CompanyName,
				jsonPath("name"),
				css("h1.org-top-card-summary__title"),
				css("h1.top-card-layout__title"),
				css("h1")),
			field(linkedin.CompanyTagline,
				jsonPath("tagline"),
				css("p.org-top-card-summary__tagline"),
				css("h4.top-card-layout__second-subline")),
			field(linkedin.CompanyIndustry,
				css("[data-test-id=about-us__industry] dd"),
				label("Industry")),
			field(linkedin.CompanySize,
				css("[data-test-id=about-us__size] dd"),
				label("Company size")),
			field(linkedin.CompanyEmployeeCountStart,
				jsonPath("employeeCountRange.start")),
			field(linkedin.CompanyEmployeeCountEnd,
				jsonPath("employeeCountRange.end")),
			field(linkedin.CompanyHeadquarters,
				css("[data-test-id=about-us__headquarters] dd"),
				label("Headquarters")),
			field(linkedin.CompanyHeadquartersCity,
				jsonPath("headquarter.address.city")),
			field(linkedin.CompanyHeadquartersCountry,
				jsonPath("headquarter.address.country")),
			field(linkedin.CompanyGeographicArea,
				jsonPath("headquarter.address.geographicArea")),
			field(linkedin.CompanyWebsite,
				jsonPath("websiteUrl"),
				attr("[data-test-id=about-us__website] dd a", "href"),
				label("Website")),
			field(linkedin.CompanyPhone,
				jsonPath("phone.number"),
				label("Phone")),
			field(linkedin.CompanyFoundedYear,
				jsonPath("foundedOn.year"),
				css("[data-test-id=about-us__foundedOn] dd"),
				label("Founded")),
			field(linkedin.CompanyDescription,
				jsonPath("description"),
				css("[data-test-id=about-us__description]"),
				css("section.org-about-module p")),
			field(linkedin.CompanySpecialities,
				jsonPath("specialities"),
				css("[data-test-id=about-us__specialties] dd"),
				label("Specialties")),
			field(linkedin.CompanyFollowerCount,
				jsonPath("followingInfo.followerCount"),
				linkedin.Locator{CSS: ".org-top-card-summary-info-list__info-item", Contains: "follower"}),
			field(linkedin.CompanyLinkedInURL,
				jsonPath("url"),
				attr("link[rel=canonical]", "href"),
				attr("meta[property='og:url']", "content")),
			field(linkedin.CompanyTopCard,
				css(".top-card-layout__first-subline")),
		},
	}
}

// PersonTable returns the selectors for person profiles and search results.
// Every search result carrying at least two values becomes a record.
func PersonTable() *linkedin.SelectorTable {
	return &linkedin.SelectorTable{
		Kind:      linkedin.KindPerson,
		Multiple:  true,
		MinValues: 2,
		Fields: []linkedin.FieldRule{
			field(linkedin.PersonName,
				jsonPath("title.text"),
				css("h1.text-heading-xlarge"),
				css("h1.top-card-layout__title"),
				css("h1")),
			field(linkedin.PersonHeadline,
				jsonPath("primarySubtitle.text"),
				css("div.text-body-medium.break-words"),
				css("h2.top-card-layout__headline")),
			field(linkedin.PersonPosition,
				jsonPath("summary.text")),
			field(linkedin.PersonCompany,
				css("[data-section=currentPositionsDetails] .top-card-link__description")),
			field(linkedin.PersonLocation,
				jsonPath("secondarySubtitle.text"),
				css("div.pv-text-details__left-panel span.text-body-small"),
				css(".top-card__subline-item")),
			field(linkedin.PersonLinkedInURL,
				jsonPath("bserpEntityNavigationalUrl"),
				jsonPath("navigationUrl"),
				attr("link[rel=canonical]", "href"),
				attr("meta[property='og:url']", "content")),
		},
		Sections: []linkedin.SectionRule{
			{
				Section: linkedin.SectionExperience,
				Blocks: []string{
					"section[data-section=experience] li.experience-item",
					"section:has(#experience) li.artdeco-list__item",
				},
				Fields: []linkedin.FieldRule{
					field(linkedin.ExperienceTitle,
						css(".experience-item__title"),
						css("h3"),
						css(".t-bold")),
					field(linkedin.ExperienceCompany,
						css(".experience-item__subtitle"),
						css("h4"),
						css(".t-14.t-normal:not(.t-black--light)")),
					field(linkedin.ExperienceLocation,
						css(".experience-item__location"),
						linkedin.Locator{CSS: ".t-black--light", Contains: ","}),
					field(linkedin.ExperiencePeriod,
						css(".date-range"),
						css(".pvs-entity__caption-wrapper")),
				},
			},
			{
				Section: linkedin.SectionEducation,
				Blocks: []string{
					"section[data-section=educationsDetails] li.education__list-item",
					"section:has(#education) li.artdeco-list__item",
				},
				Fields: []linkedin.FieldRule{
					field(linkedin.EducationSchool,
						css(".education__item--school-name"),
						css("h3"),
						css(".t-bold")),
					field(linkedin.EducationDegree,
						css(".education__item--degree-info"),
						css("h4"),
						css(".t-14.t-normal:not(.t-black--light)")),
					field(linkedin.EducationPeriod,
						css(".date-range"),
						css(".pvs-entity__caption-wrapper")),
				},
			},
		},
	}
}
