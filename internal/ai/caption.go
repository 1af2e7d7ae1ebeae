package ai

import (
	"regexp"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
)

type captionRule struct {
	name    string
	pattern *regexp.Regexp
}

var captionRules = []captionRule{
	{"T-shirt", regexp.MustCompile(`(?i)t-?shirt|\btee\b|\btop\b`)},
	{"Shirt", regexp.MustCompile(`(?i)\bshirt\b|button.?up`)},
	{"Blouse", regexp.MustCompile(`(?i)blouse`)},
	{"Pants", regexp.MustCompile(`(?i)\bpants\b|trousers|slacks`)},
	{"Jeans", regexp.MustCompile(`(?i)jeans|denim`)},
	{"Shorts", regexp.MustCompile(`(?i)shorts`)},
	{"Dress", regexp.MustCompile(`(?i)dress|gown`)},
	{"Skirt", regexp.MustCompile(`(?i)skirt`)},
	{"Jacket", regexp.MustCompile(`(?i)jacket|blazer`)},
	{"Hoodie", regexp.MustCompile(`(?i)hoodie|hooded`)},
	{"Sweater", regexp.MustCompile(`(?i)sweater|pullover|cardigan`)},
	{"Coat", regexp.MustCompile(`(?i)\bcoat\b`)},
	{"Socks", regexp.MustCompile(`(?i)\bsocks?\b`)},
	{"Underwear", regexp.MustCompile(`(?i)underwear|boxers?|briefs?|panties`)},
	{"Towel", regexp.MustCompile(`(?i)towels?`)},
	{"Bedsheet", regexp.MustCompile(`(?i)bedsheet|\bsheets?\b|linen|blanket`)},
	{"Pillowcase", regexp.MustCompile(`(?i)pillow\s?cases?`)},
}

var (
	reLotsOf   = regexp.MustCompile(`(?i)\b(pile|stack|heap|bunch|many|several|multiple|lots)\b`)
	reFew      = regexp.MustCompile(`(?i)\b(few|some|couple)\b`)
	reTwo      = regexp.MustCompile(`(?i)\b(two|pair)\b`)
	reThree    = regexp.MustCompile(`(?i)\bthree\b`)
	reFour     = regexp.MustCompile(`(?i)\bfour\b`)
	reFive     = regexp.MustCompile(`(?i)\bfive\b`)
	reClothing = regexp.MustCompile(`(?i)clothes|clothing|garment|apparel|wear|laundry|fabric`)
	rePerson   = regexp.MustCompile(`(?i)person|\bman\b|woman|wearing`)
)

// quantityHint reads a rough multiplier from words like "pile" or "two".
func quantityHint(caption string) int {
	switch {
	case reLotsOf.MatchString(caption):
		return 5
	case reFew.MatchString(caption):
		return 3
	case reTwo.MatchString(caption):
		return 2
	case reThree.MatchString(caption):
		return 3
	case reFour.MatchString(caption):
		return 4
	case reFive.MatchString(caption):
		return 5
	}
	return 1
}

// ParseCaption turns a free-text image description into a manifest. Each
// recognised category counts its mentions times the quantity hint, at least
// one. A caption that only talks about clothes in general yields a typical
// small load; one that only mentions a person yields a single item.
func ParseCaption(caption string) domain.Manifest {
	m := domain.Manifest{}
	mult := quantityHint(caption)

	for _, r := range captionRules {
		matches := len(r.pattern.FindAllStringIndex(caption, -1))
		if matches == 0 {
			continue
		}
		m.Add(r.name, max(1, matches*mult))
	}
	if len(m) > 0 {
		return m
	}

	switch {
	case reClothing.MatchString(caption):
		return domain.Manifest{"T-shirt": 2, "Pants": 1, "Socks": 2}
	case rePerson.MatchString(caption):
		return domain.Manifest{"Clothing Items": 1}
	}
	return m
}
