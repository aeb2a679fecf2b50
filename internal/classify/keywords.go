// Package classify decides whether a raw catalog record belongs to the
// product category the catalog is built for.
package classify

// KeywordConfig holds the phrase lists driving classification. The lists are
// configuration data, not control flow: they can be overridden wholesale from
// the YAML config to retarget the pipeline at a different category.
type KeywordConfig struct {
	// NegativePhrases reject a record outright when found in the title,
	// overriding any positive signal (accessory, cable, case, mount, and
	// wearable wording).
	NegativePhrases []string `yaml:"negative_phrases"`
	// PositiveTitleKeywords mark a title as in-category.
	PositiveTitleKeywords []string `yaml:"positive_title_keywords"`
	// PositiveCategoryKeywords mark the joined category string as in-category.
	PositiveCategoryKeywords []string `yaml:"positive_category_keywords"`
	// AccessoryCategoryKeywords mark the category string as accessory-dominated.
	AccessoryCategoryKeywords []string `yaml:"accessory_category_keywords"`
	// CoreNoun is the category's core noun used by the detail-text fallback.
	CoreNoun string `yaml:"core_noun"`
}

// DefaultKeywordConfig returns the headphone keyword lists the catalog ships
// with.
func DefaultKeywordConfig() *KeywordConfig {
	return &KeywordConfig{
		NegativePhrases: []string{
			// cables & adapters
			"aux cable", "audio cable", "extension cable", "headphone cable",
			"replacement cable", "charging cable", "charging cord",
			"usb c to 3.5mm", "usb-c to 3.5mm", "to 3.5mm", "3.5mm male to male",
			"aux adapter", "audio adapter", "headphone adapter", "splitter",
			"y splitter", "converter",
			// cases & covers
			"phone case", "protective case", "cover case", "case for",
			"earbud case", "headphone case", "storage case", "bag for headphones",
			"pouch for headphones", "carrying case", "cover for",
			// tips, cushions, hooks, pads
			"ear tips", "ear tip", "earbuds tips", "foam tips",
			"ear hooks", "earhooks", "ear hook", "ear cushions",
			"ear pads", "earpads", "ear pad", "replacement earpads",
			// stands, mounts, holders
			"headphone stand", "headset stand", "hanger", "mount",
			// watches & bands & straps
			"smart watch", "smartwatch", "watch band", "watch strap", "watch case",
			// other accessories
			"screen protector", "protector for", "bumper case",
		},
		PositiveTitleKeywords: []string{
			"headphone", "headphones",
			"earbud", "earbuds",
			"earphone", "earphones",
			"over-ear", "over ear",
			"on-ear", "on ear",
			"in-ear", "in ear",
			"wireless earbuds", "true wireless", "tws earbuds",
			"gaming headset", "headset",
		},
		PositiveCategoryKeywords: []string{
			"headphones", "headphone",
			"earbuds", "earbud",
			"earphones", "earphone",
		},
		AccessoryCategoryKeywords: []string{
			"cables", "cable", "adapters", "adapter", "accessories", "cases", "covers",
		},
		CoreNoun: "headphone",
	}
}

// ApplyDefaults fills empty keyword groups from the default configuration,
// so a partial YAML override only replaces the groups it names.
func (c *KeywordConfig) ApplyDefaults() {
	defaults := DefaultKeywordConfig()
	if len(c.NegativePhrases) == 0 {
		c.NegativePhrases = defaults.NegativePhrases
	}
	if len(c.PositiveTitleKeywords) == 0 {
		c.PositiveTitleKeywords = defaults.PositiveTitleKeywords
	}
	if len(c.PositiveCategoryKeywords) == 0 {
		c.PositiveCategoryKeywords = defaults.PositiveCategoryKeywords
	}
	if len(c.AccessoryCategoryKeywords) == 0 {
		c.AccessoryCategoryKeywords = defaults.AccessoryCategoryKeywords
	}
	if c.CoreNoun == "" {
		c.CoreNoun = defaults.CoreNoun
	}
}
