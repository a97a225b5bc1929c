package shared

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

const defaultRegion = "US"

// RegionFromEnv derives a storefront code from LC_ALL, LC_MESSAGES or LANG.
//
// Returns "US" when no variable yields a confident region.
func RegionFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if region, ok := RegionFromLocale(os.Getenv(key)); ok {
			return region
		}
	}
	return defaultRegion
}

// RegionFromLocale extracts the region from a POSIX locale such as "en_GB.UTF-8".
func RegionFromLocale(locale string) (string, bool) {
	locale, _, _ = strings.Cut(locale, ".")
	locale, _, _ = strings.Cut(locale, "@")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "", false
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}

	region, confidence := tag.Region()
	if confidence != language.Exact {
		return "", false
	}
	return region.String(), true
}
