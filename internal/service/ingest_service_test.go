package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iepirkumi/tenderlens/internal/port"
)

func newIngest(ai *fakeAI, store *fakeStore, chunkSize int) *IngestService {
	return NewIngestService(ai, store, chunkSize, 50)
}

func longPara(c byte) string {
	return strings.Repeat(string(c), 120)
}

func TestIngestSmallDocumentYieldsSingleChunk(t *testing.T) {
	ai := &fakeAI{}
	store := &fakeStore{}
	svc := newIngest(ai, store, 2000)

	text := longPara('a') + "\n\n" + longPara('b') + "\n\n" + longPara('c')
	res, err := svc.Ingest(context.Background(), IngestRequest{
		FileName: "a.txt", DocumentName: "A", Data: []byte(text),
	})
	require.NoError(t, err)

	assert.Equal(t, "A", res.DocumentName)
	assert.Equal(t, 1, res.ChunksCreated)
	assert.Equal(t, len(text), res.TotalCharacters)
	assert.Contains(t, res.Message, `"A"`)

	require.Equal(t, 1, store.countFor("A"))
	assert.Equal(t, 0, store.chunks[0].ChunkIndex)
}

func TestIngestIndicesAreContiguous(t *testing.T) {
	ai := &fakeAI{}
	store := &fakeStore{}
	svc := newIngest(ai, store, 100)

	text := longPara('a') + "\n\n" + longPara('b') + "\n\n" + longPara('c')
	res, err := svc.Ingest(context.Background(), IngestRequest{FileName: "doc.txt", Data: []byte(text)})
	require.NoError(t, err)
	require.Equal(t, 3, res.ChunksCreated)

	for i, c := range store.chunks {
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, 3, c.Metadata.TotalChunks)
	}
}

func TestIngestReplaceIsIdempotent(t *testing.T) {
	ai := &fakeAI{}
	store := &fakeStore{}
	svc := newIngest(ai, store, 100)

	req := IngestRequest{
		FileName: "doc.txt", DocumentName: "Nolikums", Replace: true,
		Data: []byte(longPara('a') + "\n\n" + longPara('b')),
	}

	first, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ChunksCreated, second.ChunksCreated)
	assert.Equal(t, first.ChunksCreated, store.countFor("Nolikums"))
	assert.Equal(t, longPara('a')+"\n\n"+longPara('b'), store.plainJoined("Nolikums"))
}

func TestIngestWithoutReplaceAppends(t *testing.T) {
	ai := &fakeAI{}
	store := &fakeStore{}
	svc := newIngest(ai, store, 100)

	req := IngestRequest{
		FileName: "doc.txt", DocumentName: "Nolikums",
		Data: []byte(longPara('a') + "\n\n" + longPara('b')),
	}

	_, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)
	after1 := store.countFor("Nolikums")
	_, err = svc.Ingest(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, after1*2, store.countFor("Nolikums"))
}

func TestIngestEmbeddingFailureWritesNothing(t *testing.T) {
	ai := &fakeAI{embedErr: port.ErrEmbeddingFailed, embedErrAt: 2}
	store := &fakeStore{}
	svc := newIngest(ai, store, 100)

	_, err := svc.Ingest(context.Background(), IngestRequest{
		FileName: "doc.txt",
		Data:     []byte(longPara('a') + "\n\n" + longPara('b') + "\n\n" + longPara('c')),
	})
	require.ErrorIs(t, err, port.ErrEmbeddingFailed)
	assert.Empty(t, store.chunks, "a failed ingestion must not commit partial chunks")
}

func TestIngestDeleteFailureStillInserts(t *testing.T) {
	ai := &fakeAI{}
	store := &fakeStore{deleteErr: errors.New("permission denied")}
	svc := newIngest(ai, store, 2000)

	res, err := svc.Ingest(context.Background(), IngestRequest{
		FileName: "doc.txt", DocumentName: "A", Replace: true,
		Data: []byte(longPara('a')),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ChunksCreated)
	assert.Equal(t, 1, store.countFor("A"))
}

func TestIngestDocxEmbedsPlainTextOnly(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<document><body>
		<p><r><t>` + longPara('a') + `</t></r></p>
		<p><r><t>` + longPara('b') + `</t></r></p>
	</body></document>`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	ai := &fakeAI{}
	store := &fakeStore{}
	svc := newIngest(ai, store, 100)

	res, err := svc.Ingest(context.Background(), IngestRequest{FileName: "spec.docx", Data: buf.Bytes()})
	require.NoError(t, err)
	require.Equal(t, 2, res.ChunksCreated)

	require.NotEmpty(t, ai.embedCalls)
	for _, input := range ai.embedCalls {
		assert.NotContains(t, input, "<", "embedding input must be markup-free")
	}
	for _, c := range store.chunks {
		assert.True(t, c.Metadata.HasMarkup)
		assert.Contains(t, c.Content, "<p>")
		assert.NotContains(t, c.PlainText, "<p>")
	}
}

func TestIngestEmptyDocumentIsNoOp(t *testing.T) {
	ai := &fakeAI{}
	store := &fakeStore{}
	svc := newIngest(ai, store, 2000)

	res, err := svc.Ingest(context.Background(), IngestRequest{FileName: "empty.txt", Data: nil})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ChunksCreated)
	assert.Empty(t, ai.embedCalls)
	assert.Empty(t, store.chunks)
}

func TestIngestUnsupportedFormat(t *testing.T) {
	svc := newIngest(&fakeAI{}, &fakeStore{}, 2000)

	_, err := svc.Ingest(context.Background(), IngestRequest{FileName: "scan.pdf", Data: []byte("x")})
	assert.ErrorIs(t, err, port.ErrUnsupportedFormat)
}

func TestIngestDefaultsNameFromFileName(t *testing.T) {
	ai := &fakeAI{}
	store := &fakeStore{}
	svc := newIngest(ai, store, 2000)

	res, err := svc.Ingest(context.Background(), IngestRequest{
		FileName: "Tehniskā specifikācija.txt",
		Data:     []byte(longPara('a')),
	})
	require.NoError(t, err)
	assert.Equal(t, "Tehniskā specifikācija", res.DocumentName)
}
