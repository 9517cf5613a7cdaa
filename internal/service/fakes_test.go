package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iepirkumi/tenderlens/internal/domain"
)

// fakeAI is a scriptable port.AIProvider for service tests.
type fakeAI struct {
	mu         sync.Mutex
	embedCalls []string
	embedErr   error
	embedErrAt int // fail on the n-th embed call (1-based), 0 = embedErr applies to all

	chatReply string
	chatErr   error

	streamTokens       []string
	streamErr          error
	lastStreamMessages []domain.Turn
}

func (f *fakeAI) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedCalls = append(f.embedCalls, text)
	if f.embedErr != nil && (f.embedErrAt == 0 || len(f.embedCalls) == f.embedErrAt) {
		return nil, f.embedErr
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeAI) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fakeAI) Chat(_ context.Context, _ []domain.Turn) (string, error) {
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.chatReply, nil
}

func (f *fakeAI) ChatStream(_ context.Context, messages []domain.Turn) (<-chan string, error) {
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	f.mu.Lock()
	f.lastStreamMessages = messages
	f.mu.Unlock()
	ch := make(chan string, len(f.streamTokens))
	for _, t := range f.streamTokens {
		ch <- t
	}
	close(ch)
	return ch, nil
}

// fakeStore is an in-memory port.ChunkStore.
type fakeStore struct {
	mu        sync.Mutex
	chunks    []domain.Chunk
	deleteErr error
	insertErr error

	searchResults []domain.ScoredChunk
	searchErr     error
	listAllErr    error
}

func (f *fakeStore) InsertChunks(_ context.Context, chunks []domain.Chunk) (int, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chunks = append(f.chunks, chunks...)
	return len(chunks), nil
}

func (f *fakeStore) DeleteByDocument(_ context.Context, name string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.chunks[:0]
	var deleted int64
	for _, c := range f.chunks {
		if c.DocumentName == name {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	f.chunks = kept
	return deleted, nil
}

func (f *fakeStore) ListByDocument(_ context.Context, name string) ([]domain.Chunk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Chunk
	for _, c := range f.chunks {
		if c.DocumentName == name {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChunkIndex < out[j].ChunkIndex })
	return out, nil
}

func (f *fakeStore) ListDocuments(_ context.Context) ([]domain.DocumentSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int)
	var order []string
	for _, c := range f.chunks {
		if counts[c.DocumentName] == 0 {
			order = append(order, c.DocumentName)
		}
		counts[c.DocumentName]++
	}
	var out []domain.DocumentSummary
	for _, name := range order {
		out = append(out, domain.DocumentSummary{Name: name, ChunkCount: counts[name]})
	}
	return out, nil
}

func (f *fakeStore) ListAll(_ context.Context, limit int) ([]domain.Chunk, error) {
	if f.listAllErr != nil {
		return nil, f.listAllErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]domain.Chunk(nil), f.chunks...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].ChunkIndex != out[j].ChunkIndex {
			return out[i].ChunkIndex < out[j].ChunkIndex
		}
		return out[i].DocumentName < out[j].DocumentName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) SearchSimilar(_ context.Context, _ []float32, _ float64, _ int) ([]domain.ScoredChunk, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

func (f *fakeStore) countFor(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.chunks {
		if c.DocumentName == name {
			n++
		}
	}
	return n
}

func (f *fakeStore) plainJoined(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var parts []string
	for _, c := range f.chunks {
		if c.DocumentName == name {
			parts = append(parts, c.PlainText)
		}
	}
	return strings.Join(parts, "\n\n")
}
