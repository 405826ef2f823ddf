// Package region maps US state names to postal codes and postal codes to
// coarse census-style regions.
//
// # Lookup chain
//
// A full state name resolves to a region label in three steps:
//
//	"California" → "CA" → 'W' → "West"
//
// Names are matched exactly and case-sensitively against the 51 canonical
// entries (the 50 states plus "Washington DC"). No trimming, folding or fuzzy
// matching is applied.
//
// # Region tags
//
//	O  Other       (Alaska, Hawaii, territories, the "NA" sentinel)
//	S  South
//	W  West
//	N  North East
//	M  Mid West
//
// The code table also carries the territories AS, GU, MP, PR and VI and the
// "NA" sentinel code. They are reachable by code only: "Puerto Rico" is not a
// registered state name.
//
// # Errors
//
// Each stage fails with its own sentinel ([ErrUnknownState],
// [ErrUnknownCode], [ErrUnknownRegionChar]). [StateNameToRegionLabel] returns
// the first stage error unchanged.
//
// The tables are built at package initialisation and never mutated, so every
// function here is safe for concurrent use.
package region
