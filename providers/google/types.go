package google

// SearchResponse ist die relevante Teilmenge der Custom-Search-Antwort.
type SearchResponse struct {
	Items []Item `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Item repräsentiert einen einzelnen Treffer in der API-Antwort.
type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	DisplayLink string `json:"displayLink"`
	Snippet     string `json:"snippet"`
}
