package language

import (
	"fmt"
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type entry struct {
	code2   string // ISO 639-1 (2-letter)
	code3   string // ISO 639-2 primary (3-letter)
	alt3    string // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string // Human-readable name
}

var languages = []entry{
	{"en", "eng", "", "English"},
	{"es", "spa", "", "Spanish"},
	{"fr", "fra", "fre", "French"},
	{"de", "deu", "ger", "German"},
	{"it", "ita", "", "Italian"},
	{"pt", "por", "", "Portuguese"},
	{"ca", "cat", "", "Catalan"},
	{"gl", "glg", "", "Galician"},
	{"eu", "eus", "baq", "Basque"},
	{"ja", "jpn", "", "Japanese"},
	{"zh", "zho", "chi", "Chinese"},
	{"ru", "rus", "", "Russian"},
	{"nl", "nld", "dut", "Dutch"},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	return nil
}

// Validate reports whether tag is a well-formed BCP 47 tag. ISO 639-2 codes
// such as "spa" are accepted because BCP 47 allows 3-letter primary subtags.
func Validate(tag string) error {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return fmt.Errorf("language tag is empty")
	}
	if _, err := xlanguage.Parse(trimmed); err != nil {
		return fmt.Errorf("language tag %q: %w", trimmed, err)
	}
	return nil
}

// DisplayName returns a human-readable name for a tag. Region subtags are
// appended in parentheses ("es-MX" becomes "Spanish (Mexico)").
// Returns "Unknown" for empty input, or the tag as given when unrecognized.
func DisplayName(tag string) string {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return "Unknown"
	}
	if e := lookup(trimmed); e != nil {
		return e.display
	}

	parsed, err := xlanguage.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	base, _ := parsed.Base()
	name := ""
	if e := lookup(base.String()); e != nil {
		name = e.display
	} else if n := display.English.Languages().Name(base); n != "" {
		name = n
	} else {
		return trimmed
	}
	if region, confidence := parsed.Region(); confidence == xlanguage.Exact {
		if rn := display.English.Regions().Name(region); rn != "" {
			return fmt.Sprintf("%s (%s)", name, rn)
		}
	}
	return name
}
