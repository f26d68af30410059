package model

import "time"

// MerchantRecord represents a canonical merchant identity with its
// alternate spellings. Aliases are compared case-insensitively after
// normalization; every alias maps to exactly one canonical record.
type MerchantRecord struct {
	LastSeen  time.Time
	Name      string
	Category  string
	Icon      string
	Website   string
	Phone     string
	Aliases   []string
	Frequency int
}

// DuplicateVerdict is the duplicate detector's judgment for one candidate
// against a pool of existing transactions. Matches holds every pool member
// that scored at least the match threshold; Confidence is the maximum score
// observed. IsDuplicate is a stricter signal than a non-empty match list:
// matches below the duplicate threshold are surfaced for soft review only.
type DuplicateVerdict struct {
	Matches     []StoredTransaction
	Confidence  float64
	IsDuplicate bool
}
