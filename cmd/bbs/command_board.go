package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bbs/internal/board"
	"bbs/internal/client"
	"bbs/internal/types"
)

func newThreadsCmd(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var offset int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "threads",
		Short: "List the latest threads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(wiring, opts)
			if err != nil {
				return err
			}
			api := wiring.newAPI(cfg, cliLogger(wiring, cfg))
			fetch := func(ctx context.Context, _ string, offset int) ([]types.Thread, error) {
				return api.ListThreads(ctx, offset)
			}
			threads, err := fetchPage[types.Thread](cmd.Context(), fetch, client.ThreadsPath(), offset, "list threads failed")
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), threads)
			}
			printThreads(cmd.OutOrStdout(), threads)
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset of the first thread (steps of 10)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

// newPostsCmd lists a thread's posts. Posts are always read from offset 0.
func newPostsCmd(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "posts <thread-id>",
		Short: "List the posts of a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID := strings.TrimSpace(args[0])
			if threadID == "" {
				return errors.New("thread id is required")
			}
			cfg, err := resolveConfig(wiring, opts)
			if err != nil {
				return err
			}
			api := wiring.newAPI(cfg, cliLogger(wiring, cfg))
			fetch := func(ctx context.Context, _ string, offset int) ([]types.Post, error) {
				return api.ListPosts(ctx, threadID, offset)
			}
			posts, err := fetchPage[types.Post](cmd.Context(), fetch, client.PostsPath(threadID), 0, "list posts failed")
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), posts)
			}
			printPosts(cmd.OutOrStdout(), posts)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newNewThreadCmd(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "new-thread <title>",
		Short: "Create a thread",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(wiring, opts)
			if err != nil {
				return err
			}
			api := wiring.newAPI(cfg, cliLogger(wiring, cfg))
			send := func(ctx context.Context, title string) (*types.Thread, error) {
				return api.CreateThread(ctx, title)
			}
			thread, err := submitOnce[*types.Thread](cmd.Context(), send, board.SubmissionOptions[string]{
				Field:          "title",
				IsEmpty:        isBlank,
				FailureMessage: "create thread failed",
			}, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), thread)
			}
			if thread == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "thread created")
				return nil
			}
			printThreads(cmd.OutOrStdout(), []types.Thread{*thread})
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newPostCmd(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "post <thread-id> <text>",
		Short: "Append a post to a thread",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID := strings.TrimSpace(args[0])
			if threadID == "" {
				return errors.New("thread id is required")
			}
			cfg, err := resolveConfig(wiring, opts)
			if err != nil {
				return err
			}
			api := wiring.newAPI(cfg, cliLogger(wiring, cfg))
			send := func(ctx context.Context, text string) (*types.Post, error) {
				return api.CreatePost(ctx, threadID, text)
			}
			post, err := submitOnce[*types.Post](cmd.Context(), send, board.SubmissionOptions[string]{
				Field:          "post",
				IsEmpty:        isBlank,
				FailureMessage: "create post failed",
			}, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), post)
			}
			if post == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "post created")
				return nil
			}
			printPosts(cmd.OutOrStdout(), []types.Post{*post})
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

// fetchPage loads one page through a ListController so the CLI shares the
// UI's offset and failure handling.
func fetchPage[T any](ctx context.Context, fetch board.ListFetcher[T], collection string, offset int, failure string) ([]T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	list := board.NewListController(fetch, failure)
	defer list.Close()
	result := list.Load(collection, max(offset, 0)).Run(ctx)
	if !list.Apply(result) {
		return nil, fmt.Errorf("%s: stale result for %s at offset %d", failure, result.Collection, result.Offset)
	}
	state := list.State()
	if state.HasError() {
		return nil, fmt.Errorf("%s: %w", state.Error, state.Err)
	}
	return state.Items, nil
}

func submitOnce[R any](ctx context.Context, send board.Sender[string, R], opts board.SubmissionOptions[string], payload string) (R, error) {
	var zero R
	if ctx == nil {
		ctx = context.Background()
	}
	submission := board.NewSubmissionController(send, opts)
	defer submission.Close()
	req, err := submission.Submit(payload)
	if err != nil {
		return zero, err
	}
	if req == nil {
		return zero, errors.New(opts.FailureMessage)
	}
	result := req.Run(ctx)
	value, ok := submission.Apply(result)
	if !ok {
		if result.Err != nil {
			return zero, fmt.Errorf("%s: %w", opts.FailureMessage, result.Err)
		}
		return zero, errors.New(opts.FailureMessage)
	}
	return value, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
