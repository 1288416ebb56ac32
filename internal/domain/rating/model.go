package rating

// Rating holds the scores appended to an outfit. The id matches the
// outfit's id, scores are append-only integers in [0,10], and Average
// is recomputed on every append. Pictures mirror the outfit's photo
// list.
type Rating struct {
	ID       string   `json:"id"`
	Scores   []int    `json:"scores"`
	Average  float64  `json:"average"`
	Pictures []string `json:"pictures"`
}

// TopEntry is one row of the top-outfits view.
type TopEntry struct {
	ID       string   `json:"id"`
	Average  float64  `json:"average"`
	Pictures []string `json:"pictures"`
}
