// Package sim makes random DNA sequences for testing digests and plans
// without real input data.
package sim

import (
	"math/rand"
	"strings"
	"time"
)

// Make returns an upper-case DNA sequence of the given length with
// approximately the requested GC fraction. A zero seed uses the clock;
// any other seed reproduces the same sequence.
func Make(length int, gc float64, seed int64) string {
	if length <= 0 {
		return ""
	}
	if gc < 0 {
		gc = 0
	}
	if gc > 1 {
		gc = 1
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	gcCount := int(float64(length)*gc + 0.5)
	if gcCount > length {
		gcCount = length
	}

	bases := make([]byte, length)
	for i := 0; i < gcCount; i++ {
		if r.Intn(2) == 0 {
			bases[i] = 'G'
		} else {
			bases[i] = 'C'
		}
	}
	for i := gcCount; i < length; i++ {
		if r.Intn(2) == 0 {
			bases[i] = 'A'
		} else {
			bases[i] = 'T'
		}
	}

	r.Shuffle(length, func(i, j int) {
		bases[i], bases[j] = bases[j], bases[i]
	})
	return string(bases)
}

// WithSites plants the given sites into a random background sequence at
// evenly spaced offsets, for building digestable test molecules.
func WithSites(length int, gc float64, seed int64, sites ...string) string {
	bases := []byte(Make(length, gc, seed))
	if len(sites) == 0 || length == 0 {
		return string(bases)
	}

	gap := length / (len(sites) + 1)
	for i, site := range sites {
		site = strings.ToUpper(site)
		at := (i + 1) * gap
		if at+len(site) > length {
			break
		}
		copy(bases[at:], site)
	}
	return string(bases)
}
