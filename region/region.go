package region

import (
	"errors"
	"fmt"
	"sort"
)

// Lookup errors, one per stage. Failures wrap them with the offending key.
var (
	// ErrUnknownState is returned for a name missing from the state table.
	ErrUnknownState = errors.New("unknown state")
	// ErrUnknownCode is returned for a postal code with no region.
	ErrUnknownCode = errors.New("unknown postal code")
	// ErrUnknownRegionChar is returned for a tag outside O, S, W, N and M.
	ErrUnknownRegionChar = errors.New("unknown region char")
)

// Tag is the single-character region key between a postal code and its label.
type Tag byte

// Region tags.
const (
	Other     Tag = 'O' // territories and the NA sentinel
	South     Tag = 'S'
	West      Tag = 'W'
	NorthEast Tag = 'N'
	MidWest   Tag = 'M'
)

// String returns the tag as a one-character string.
func (t Tag) String() string { return string(rune(t)) }

var stateNameToCode = map[string]string{
	"Alabama":        "AL",
	"Alaska":         "AK",
	"Arizona":        "AZ",
	"Arkansas":       "AR",
	"California":     "CA",
	"Colorado":       "CO",
	"Connecticut":    "CT",
	"Delaware":       "DE",
	"Florida":        "FL",
	"Georgia":        "GA",
	"Hawaii":         "HI",
	"Idaho":          "ID",
	"Illinois":       "IL",
	"Indiana":        "IN",
	"Iowa":           "IA",
	"Kansas":         "KS",
	"Kentucky":       "KY",
	"Louisiana":      "LA",
	"Maine":          "ME",
	"Maryland":       "MD",
	"Massachusetts":  "MA",
	"Michigan":       "MI",
	"Minnesota":      "MN",
	"Mississippi":    "MS",
	"Missouri":       "MO",
	"Montana":        "MT",
	"Nebraska":       "NE",
	"Nevada":         "NV",
	"New Hampshire":  "NH",
	"New Jersey":     "NJ",
	"New Mexico":     "NM",
	"New York":       "NY",
	"North Carolina": "NC",
	"North Dakota":   "ND",
	"Ohio":           "OH",
	"Oklahoma":       "OK",
	"Oregon":         "OR",
	"Pennsylvania":   "PA",
	"Rhode Island":   "RI",
	"South Carolina": "SC",
	"South Dakota":   "SD",
	"Tennessee":      "TN",
	"Texas":          "TX",
	"Utah":           "UT",
	"Vermont":        "VT",
	"Virginia":       "VA",
	"Washington":     "WA",
	"West Virginia":  "WV",
	"Wisconsin":      "WI",
	"Wyoming":        "WY",
	"Washington DC":  "DC",
}

// codeToTag includes territories and the "NA" sentinel, which no state name reaches.
var codeToTag = map[string]Tag{
	"AK": Other,
	"AL": South,
	"AR": South,
	"AS": Other,
	"AZ": West,
	"CA": West,
	"CO": West,
	"CT": NorthEast,
	"DC": NorthEast,
	"DE": NorthEast,
	"FL": South,
	"GA": South,
	"GU": Other,
	"HI": Other,
	"IA": MidWest,
	"ID": West,
	"IL": MidWest,
	"IN": MidWest,
	"KS": MidWest,
	"KY": South,
	"LA": South,
	"MA": NorthEast,
	"MD": NorthEast,
	"ME": NorthEast,
	"MI": West,
	"MN": MidWest,
	"MO": MidWest,
	"MP": Other,
	"MS": South,
	"MT": West,
	"NA": Other,
	"NC": South,
	"ND": MidWest,
	"NE": West,
	"NH": NorthEast,
	"NJ": NorthEast,
	"NM": West,
	"NV": West,
	"NY": NorthEast,
	"OH": MidWest,
	"OK": South,
	"OR": West,
	"PA": NorthEast,
	"PR": Other,
	"RI": NorthEast,
	"SC": South,
	"SD": MidWest,
	"TN": South,
	"TX": South,
	"UT": West,
	"VA": South,
	"VI": Other,
	"VT": NorthEast,
	"WA": West,
	"WI": MidWest,
	"WV": South,
	"WY": West,
}

var tagToLabel = map[Tag]string{
	Other:     "Other",
	South:     "South",
	West:      "West",
	NorthEast: "North East",
	MidWest:   "Mid West",
}

// StateNameToCode returns the postal code for a full state name, e.g.
// "Texas" -> "TX". The match is exact and case-sensitive.
func StateNameToCode(name string) (string, error) {
	code, ok := stateNameToCode[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	return code, nil
}

// CodeToRegionChar returns the region tag for a postal code, territories included.
func CodeToRegionChar(code string) (Tag, error) {
	tag, ok := codeToTag[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return tag, nil
}

// RegionCharToLabel returns the human-readable label for a region tag.
func RegionCharToLabel(tag Tag) (string, error) {
	label, ok := tagToLabel[tag]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegionChar, rune(tag))
	}
	return label, nil
}

// StateNameToRegionLabel chains the three lookups. The first stage that fails
// aborts the chain and its error is returned as is.
func StateNameToRegionLabel(name string) (string, error) {
	code, err := StateNameToCode(name)
	if err != nil {
		return "", err
	}
	tag, err := CodeToRegionChar(code)
	if err != nil {
		return "", err
	}
	return RegionCharToLabel(tag)
}

// StateNames returns the registered state names in sorted order.
func StateNames() []string {
	return sortedKeys(stateNameToCode)
}

// Codes returns every postal code with a region tag, in sorted order.
func Codes() []string {
	return sortedKeys(codeToTag)
}

// Tags returns the valid region tags in sorted order.
func Tags() []Tag {
	tags := make([]Tag, 0, len(tagToLabel))
	for t := range tagToLabel {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
