package duplicates

import "github.com/IvanShishkin/duphound/pkg/models"

// MatchPolicy is the content condition a name match must also satisfy
type MatchPolicy int

const (
	// MatchContent requires equal content digests
	MatchContent MatchPolicy = iota
	// MatchSize requires equal sizes; used when hashing is off
	MatchSize
	// MatchName accepts any name match
	MatchName
)

// PolicyFor maps the run settings onto a policy
func PolicyFor(useHash, matchSize bool) MatchPolicy {
	switch {
	case useHash:
		return MatchContent
	case matchSize:
		return MatchSize
	default:
		return MatchName
	}
}

func (p MatchPolicy) String() string {
	switch p {
	case MatchContent:
		return "content"
	case MatchSize:
		return "size"
	case MatchName:
		return "name"
	default:
		return "unknown"
	}
}

// accepts reports whether candidate satisfies the content condition against anchor
func (p MatchPolicy) accepts(anchor, candidate models.FileRecord) bool {
	switch p {
	case MatchContent:
		return anchor.SameDigest(candidate)
	case MatchSize:
		return anchor.Size == candidate.Size
	default:
		return true
	}
}
