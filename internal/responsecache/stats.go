package responsecache

import "time"

// raw counts a store can produce in a single pass
type statCounts struct {
	total     int64
	totalHits int64
	expired   int64
	repeated  int64 // live entries with hit_count > 1
	liveHits  int64
}

// reduces a full entry scan into Stats
func ComputeStats(entries []Entry, now time.Time) Stats {
	var counts statCounts

	for i := range entries {
		e := &entries[i]

		counts.total++
		counts.totalHits += e.HitCount

		if e.Expired(now) {
			counts.expired++
			continue
		}

		counts.liveHits += e.HitCount

		if e.HitCount > 1 {
			counts.repeated++
		}
	}

	return counts.stats()
}

func (c statCounts) stats() Stats {
	s := Stats{
		TotalEntries:   c.total,
		TotalHits:      c.totalHits,
		ExpiredEntries: c.expired,
	}

	live := c.total - c.expired
	if live > 0 {
		s.HitRate = float64(c.repeated) / float64(live) * 100
		s.AverageHitCount = float64(c.liveHits) / float64(live)
	}

	return s
}
