package episode

import "sort"

// SeasonProgress is the per-season slice of a show's watch progress.
type SeasonProgress struct {
	Season   int
	Episodes []Episode
	Watched  int
	Total    int
	Percent  float64
}

// ShowProgress aggregates watch progress across a whole show.
type ShowProgress struct {
	Watched int
	Total   int
	Percent float64
	Seasons []SeasonProgress
}

// Progress groups episodes by season and derives watched counts and
// percentages. Seasons come back sorted ascending, episodes within a season
// sorted by episode number. Recomputed on every call; owns no state.
func Progress(episodes []Episode) ShowProgress {
	bySeason := make(map[int][]Episode)
	for _, e := range episodes {
		bySeason[e.SeasonNumber] = append(bySeason[e.SeasonNumber], e)
	}

	seasons := make([]int, 0, len(bySeason))
	for n := range bySeason {
		seasons = append(seasons, n)
	}

	sort.Ints(seasons)

	out := ShowProgress{Total: len(episodes)}

	for _, n := range seasons {
		eps := bySeason[n]
		sort.Slice(eps, func(i, j int) bool {
			return eps[i].EpisodeNumber < eps[j].EpisodeNumber
		})

		sp := SeasonProgress{Season: n, Episodes: eps, Total: len(eps)}

		for _, e := range eps {
			if e.Watched {
				sp.Watched++
			}
		}

		sp.Percent = percent(sp.Watched, sp.Total)
		out.Watched += sp.Watched
		out.Seasons = append(out.Seasons, sp)
	}

	out.Percent = percent(out.Watched, out.Total)

	return out
}

// percent never divides by zero: an empty season or show is 0% watched.
func percent(watched, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(watched) / float64(total) * 100
}
