package version

import (
	"strconv"
	"strings"
)

// Satisfies reports whether candidate meets the minimum-version requirement.
// An empty minimum means "any version" and is always satisfied. An empty
// candidate (version unknown) can only satisfy an empty minimum: without an
// actual version there is nothing to prove satisfaction with.
//
// Versions are compared as dotted/decimal numeric sequences, e.g.
// "1.10" >= "1.9". Missing trailing components count as zero, so
// "1.2" == "1.2.0". Satisfies never fails on malformed input: non-numeric
// components fall back to lexical comparison, which at worst yields a
// conservative "not satisfied".
func Satisfies(candidate, minimum string) bool {
	if minimum == "" {
		return true
	}
	if candidate == "" {
		return false
	}
	return Compare(candidate, minimum) >= 0
}

// Compare returns -1, 0, or 1 ordering a against b componentwise.
func Compare(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		ac, bc := component(as, i), component(bs, i)

		an, aerr := strconv.ParseInt(ac, 10, 64)
		bn, berr := strconv.ParseInt(bc, 10, 64)
		if aerr != nil || berr != nil {
			// Malformed component; lexical fallback for this position
			if ac != bc {
				if ac < bc {
					return -1
				}
				return 1
			}
			continue
		}

		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
	}
	return 0
}

// component returns the i-th dotted component, or "0" past the end.
func component(parts []string, i int) string {
	if i >= len(parts) {
		return "0"
	}
	if s := strings.TrimSpace(parts[i]); s != "" {
		return s
	}
	return "0"
}
