package respond

import (
	"strconv"
	"strings"
)

type format int

const (
	formatJSON format = iota
	formatCBOR
)

type mediaRange struct {
	typ, subtype string
	q            float64
}

// parseAccept splits an Accept header into media ranges. A missing or
// malformed q parameter counts as 1.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		params := strings.Split(part, ";")
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		typ, subtype, ok := strings.Cut(mt, "/")
		if !ok || typ == "" || subtype == "" {
			continue
		}
		q := 1.0
		for _, p := range params[1:] {
			k, v, found := strings.Cut(strings.TrimSpace(p), "=")
			if !found || strings.TrimSpace(k) != "q" {
				continue
			}
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && parsed >= 0 && parsed <= 1 {
				q = parsed
			}
		}
		ranges = append(ranges, mediaRange{typ: typ, subtype: subtype, q: q})
	}
	return ranges
}

// specificity ranks how closely r names the given subtype family ("json" or
// "cbor"). Zero means no match.
func (r mediaRange) specificity(family string) int {
	switch {
	case r.typ == "*" && r.subtype == "*":
		return 1
	case r.typ != "application":
		return 0
	case r.subtype == "*":
		return 2
	case r.subtype == family:
		return 3
	case r.subtype == "problem+"+family:
		return 4
	default:
		return 0
	}
}

// preference returns the q-value and specificity of the most specific range
// matching family.
func preference(ranges []mediaRange, family string) (float64, int) {
	bestQ, bestRank := 0.0, 0
	for _, r := range ranges {
		rank := r.specificity(family)
		if rank == 0 {
			continue
		}
		if rank > bestRank || (rank == bestRank && r.q > bestQ) {
			bestQ, bestRank = r.q, rank
		}
	}
	return bestQ, bestRank
}

// selectFormat picks CBOR only when the client prefers it: a higher q-value
// wins, specificity breaks ties, and JSON wins everything else.
func selectFormat(accept string) format {
	if strings.TrimSpace(accept) == "" {
		return formatJSON
	}
	ranges := parseAccept(accept)
	cborQ, cborRank := preference(ranges, "cbor")
	if cborQ == 0 {
		return formatJSON
	}
	jsonQ, jsonRank := preference(ranges, "json")
	switch {
	case cborQ > jsonQ:
		return formatCBOR
	case cborQ == jsonQ && cborRank > jsonRank:
		return formatCBOR
	default:
		return formatJSON
	}
}
