package types

type Thread struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Post belongs to the thread whose endpoint it was fetched or created through.
type Post struct {
	ID   string `json:"id"`
	Post string `json:"post"`
}
