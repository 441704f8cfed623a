package store

// LoadReport summarizes a directory scan.
type LoadReport struct {
	Radicals   int `json:"radicals"`
	Characters int `json:"characters"`
	// Skipped counts files that could not be decoded or had no key.
	Skipped int `json:"skipped"`
	// Decoded counts files actually parsed; the rest came from the cache.
	Decoded int `json:"decoded"`
}

// RadicalCount pairs a radical key with the number of indexed characters
// containing it.
type RadicalCount struct {
	Radical string `json:"radical"`
	Count   int    `json:"count"`
}

// Stats aggregates the store contents.
type Stats struct {
	TotalCharacters int            `json:"total_characters"`
	TotalRadicals   int            `json:"total_radicals"`
	ByHSKLevel      map[int]int    `json:"characters_by_hsk_level"`
	ByStrokeCount   map[int]int    `json:"characters_by_stroke_count"`
	TopRadicals     []RadicalCount `json:"most_common_radicals"`
}

// TopRadicalsLimit caps Stats.TopRadicals.
const TopRadicalsLimit = 10
