package model

// Pill is a labeled chip: a display title plus the filter value it stands for
type Pill struct {
	Title string `json:"title" yaml:"title" mapstructure:"title"`
	Value string `json:"value" yaml:"value" mapstructure:"value"`
}

// Catalog maps machine values to display titles, in display order
type Catalog []Pill

// Title returns the display title for value
func (c Catalog) Title(value string) (string, bool) {
	for _, p := range c {
		if p.Value == value {
			return p.Title, true
		}
	}
	return "", false
}

// Select returns the catalog entries whose value appears in values,
// in catalog order. Values missing from the catalog are dropped.
func (c Catalog) Select(values []string) []Pill {
	if len(values) == 0 {
		return nil
	}

	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}

	var out []Pill
	for _, p := range c {
		if set[p.Value] {
			out = append(out, p)
		}
	}
	return out
}

// DefaultBadges returns the built-in tag catalog
func DefaultBadges() Catalog {
	return Catalog{
		{Title: "Islam", Value: "islam"},
		{Title: "Quran", Value: "quran"},
		{Title: "Hadith", Value: "hadith"},
		{Title: "Aqeedah", Value: "aqeedah"},
		{Title: "Christians", Value: "christian"},
		{Title: "Atheism", Value: "atheist"},
		{Title: `"Salafi" / Wahabi`, Value: "wahabi"},
		{Title: "Quranist", Value: "quranist"},
		{Title: "Shias", Value: "shia"},
		{Title: "History", Value: "history"},
		{Title: "Refutations", Value: "refutation"},
	}
}

// DefaultCategories returns the home page categories, in display order
func DefaultCategories() Catalog {
	return Catalog{
		{Title: "Islam", Value: "islam"},
		{Title: "Christians", Value: "christian"},
		{Title: "Aqeedah", Value: "aqeedah"},
		{Title: `"Salafi" / Wahabi`, Value: "wahabi"},
		{Title: "Quranist", Value: "quranist"},
		{Title: "Shias", Value: "shia"},
	}
}
