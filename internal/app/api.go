package app

import (
	"context"

	"bbs/internal/client"
	"bbs/internal/types"
)

type BoardAPI interface {
	ListThreads(ctx context.Context, offset int) ([]types.Thread, error)
	CreateThread(ctx context.Context, title string) (*types.Thread, error)
	ListPosts(ctx context.Context, threadID string, offset int) ([]types.Post, error)
	CreatePost(ctx context.Context, threadID, text string) (*types.Post, error)
}

var _ BoardAPI = (*client.Client)(nil)
