package pointintime

import (
	"regexp"
)

// BranchIDPrefix is the prefix of every platform generated branch id.
const BranchIDPrefix = "br-"

var (
	lsnRegexp = regexp.MustCompile(`^[0-9A-Fa-f]{1,8}/[0-9A-Fa-f]{1,8}$`)

	// date, optional time with optional seconds and fraction, optional zone
	timestampRegexp = regexp.MustCompile(`(?i)^\d{4}-\d{2}-\d{2}(?:[t ]\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?)?(?:z|[+-]\d{2}:?\d{2})?$`)

	// generated ids look like "br-aged-salad-637688"
	branchIDRegexp = regexp.MustCompile(`^` + BranchIDPrefix + `[a-z]+-[a-z]+-[0-9]+$`)
)

// LooksLikeLSN reports whether token has the textual form of a log sequence
// number: two hex parts separated by a slash, e.g. "16/B374D848".
func LooksLikeLSN(token string) bool {
	return lsnRegexp.MatchString(token)
}

// LooksLikeTimestamp reports whether token is shaped like an ISO-8601
// timestamp. The check is syntactic only, "2016-12-31T23:59:60Z" passes.
func LooksLikeTimestamp(token string) bool {
	return timestampRegexp.MatchString(token)
}

// LooksLikeBranchID reports whether token has the shape of a platform
// generated branch id rather than a name. The prefix alone is not enough,
// users may name a branch "br-feature".
func LooksLikeBranchID(token string) bool {
	return branchIDRegexp.MatchString(token)
}
