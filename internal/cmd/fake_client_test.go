package cmd

import (
	"context"

	"threadloom/internal/reddit"
)

type fakeClient struct {
	GetThreadFunc       func(ctx context.Context, threadID string) (*reddit.Post, []reddit.Thing, error)
	GetMoreChildrenFunc func(ctx context.Context, linkID string, ids []string) ([]reddit.Thing, error)
}

func (f *fakeClient) GetThread(ctx context.Context, threadID string) (*reddit.Post, []reddit.Thing, error) {
	if f.GetThreadFunc != nil {
		return f.GetThreadFunc(ctx, threadID)
	}
	return &reddit.Post{ID: threadID}, nil, nil
}

func (f *fakeClient) GetMoreChildren(ctx context.Context, linkID string, ids []string) ([]reddit.Thing, error) {
	if f.GetMoreChildrenFunc != nil {
		return f.GetMoreChildrenFunc(ctx, linkID, ids)
	}
	return nil, nil
}
