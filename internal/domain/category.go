package domain

import (
	"fmt"
	"strings"
)

// Category is a topic slug of the upstream site. The zero value is the homepage feed.
type Category string

// Homepage selects the unfiltered homepage feed.
const Homepage Category = ""

// homepageDir is the output sub-directory used when no category is selected.
const homepageDir = "homepage"

// Fixed set of categories served by the site.
const (
	World         Category = "the-gioi"
	Society       Category = "xa-hoi"
	Culture       Category = "van-hoa"
	Economy       Category = "kinh-te"
	Education     Category = "giao-duc"
	Sports        Category = "the-thao"
	Entertainment Category = "giai-tri"
	Law           Category = "phap-luat"
	Technology    Category = "khoa-hoc-cong-nghe"
	Science       Category = "khoa-hoc"
	Lifestyle     Category = "doi-song"
	Vehicles      Category = "xe-co"
	RealEstate    Category = "nha-dat"
)

// CategoryEntry pairs a descriptive key with its slug.
type CategoryEntry struct {
	Key      string
	Category Category
}

// categories is ordered the way the site lists them.
var categories = []CategoryEntry{
	{Key: "world", Category: World},
	{Key: "society", Category: Society},
	{Key: "culture", Category: Culture},
	{Key: "economy", Category: Economy},
	{Key: "education", Category: Education},
	{Key: "sports", Category: Sports},
	{Key: "entertainment", Category: Entertainment},
	{Key: "law", Category: Law},
	{Key: "technology", Category: Technology},
	{Key: "science", Category: Science},
	{Key: "lifestyle", Category: Lifestyle},
	{Key: "vehicles", Category: Vehicles},
	{Key: "real-estate", Category: RealEstate},
}

// Categories returns the fixed category set.
func Categories() []CategoryEntry {
	out := make([]CategoryEntry, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory resolves a user supplied slug or descriptive key.
// An empty string selects the homepage feed.
func ParseCategory(raw string) (Category, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return Homepage, nil
	}

	for _, entry := range categories {
		if value == string(entry.Category) || value == entry.Key {
			return entry.Category, nil
		}
	}

	return Homepage, fmt.Errorf("%w %q: valid options: %s", ErrInvalidCategory, raw, validSlugs())
}

// IsHomepage reports whether c selects the unfiltered feed.
func (c Category) IsHomepage() bool {
	return c == Homepage
}

// Slug returns the slug used in API paths.
func (c Category) Slug() string {
	return string(c)
}

// DirName returns the output sub-directory for c.
func (c Category) DirName() string {
	if c.IsHomepage() {
		return homepageDir
	}
	return string(c)
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return c.DirName()
}

func validSlugs() string {
	slugs := make([]string, 0, len(categories))
	for _, entry := range categories {
		slugs = append(slugs, string(entry.Category))
	}
	return strings.Join(slugs, ", ")
}

// Validate rejects categories outside the fixed set.
func (c Category) Validate() error {
	if c.IsHomepage() {
		return nil
	}
	for _, entry := range categories {
		if c == entry.Category {
			return nil
		}
	}
	return fmt.Errorf("%w %q: valid options: %s", ErrInvalidCategory, string(c), validSlugs())
}
