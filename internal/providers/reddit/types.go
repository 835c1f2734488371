package reddit

// listing is the envelope Reddit wraps every paginated response in.
type listing struct {
	Data struct {
		After    string  `json:"after"`
		Children []child `json:"children"`
	} `json:"data"`
}

type child struct {
	Data thing `json:"data"`
}

// thing covers the fields shared by submissions and comments. Reddit sends
// the same shape for both; submissions carry Title/Selftext/URL, comments
// carry Body.
type thing struct {
	Subreddit  string  `json:"subreddit"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Body       string  `json:"body"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	URL        string  `json:"url"`
	CreatedUTC float64 `json:"created_utc"`
}
