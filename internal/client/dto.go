package client

type CreateThreadRequest struct {
	Title string `json:"title"`
}

type CreatePostRequest struct {
	Post string `json:"post"`
}
