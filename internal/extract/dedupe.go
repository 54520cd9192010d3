package extract

import "github.com/nbenliogludev/seaware-booking-agent/internal/reservation"

type cabinKey struct {
	category string
	number   string
}

// DedupeCabins keeps the first cabin for every (category, cabin number) pair
// and drops later repeats, even when their prices or details differ.
func DedupeCabins(cabins []reservation.Cabin) []reservation.Cabin {
	seen := make(map[cabinKey]struct{}, len(cabins))
	out := make([]reservation.Cabin, 0, len(cabins))

	for _, c := range cabins {
		key := cabinKey{category: c.Category, number: c.CabinNumber}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
