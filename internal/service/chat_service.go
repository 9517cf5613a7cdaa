package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iepirkumi/tenderlens/internal/citation"
	"github.com/iepirkumi/tenderlens/internal/domain"
	"github.com/iepirkumi/tenderlens/internal/port"
)

// standingContext describes the procurement domain; it heads every answer
// prompt regardless of what was retrieved.
const standingContext = `Tu esi ekspertu asistents, kas palīdz analizēt iepirkumu "BAXE risinājuma paplašināšana, pilnveidošana, uzturēšana un garantijas nodrošināšana".

Iepirkuma identifikācijas Nr.: FM VID 2024/232/ANM
Pasūtītājs: Valsts ieņēmumu dienests (VID), Talejas iela 1, Rīga, LV-1978
BAXE (Baltic X-ray Exchange) ir Baltijas valstu muitas iestāžu kopīga sistēma rentgena attēlu apmaiņai un analīzei kravas pārbaudēs uz robežām.

Atbildi latviešu valodā. Esi precīzs un balsties uz iepirkuma dokumentāciju.`

// citationDirective tells the model how to claim its sources; the citation
// parser depends on this exact line format.
const citationDirective = `Atbildes beigās pievieno atsevišķu rindu "Avots: <dokumenta nosaukums>" vai, ja avotu ir vairāki, "Avoti: <nosaukumi, atdalīti ar semikolu>". Izmanto precīzus dokumentu nosaukumus no konteksta virsrakstiem. Ja atbildē konteksts netika izmantots, šo rindu izlaid.`

const noContextNotice = `Dokumentu kontekstu šim jautājumam neizdevās atrast. Pasaki to lietotājam un atbildi tikai ar vispārīgo iepirkuma informāciju, nepievienojot avotu rindu.`

const reasoningPrompt = `Tu esi analītisks asistents. Tev jāizanalizē lietotāja jautājums par iepirkumu un jāizdomā, kā uz to atbildēt.

Padomā par:
1. Kāda informācija ir nepieciešama, lai atbildētu?
2. Kur šī informācija atrodas dokumentācijā?
3. Kāda ir labākā pieeja atbildei?

Atbildi īsi, 2-3 teikumos latviešu valodā.`

// ChatService orchestrates query-time retrieval and answer assembly.
type ChatService struct {
	ai             port.AIProvider
	chunks         port.ChunkStore
	scoreThreshold float64
	topK           int
	fallbackLimit  int
}

// NewChatService creates a new chat service.
func NewChatService(ai port.AIProvider, chunks port.ChunkStore, scoreThreshold float64, topK, fallbackLimit int) *ChatService {
	return &ChatService{
		ai:             ai,
		chunks:         chunks,
		scoreThreshold: scoreThreshold,
		topK:           topK,
		fallbackLimit:  fallbackLimit,
	}
}

// RetrievedContext is the grounding material for one answer.
type RetrievedContext struct {
	Chunks    []domain.Chunk
	Documents []string // distinct document names, retrieval order
}

// Retrieve looks up grounding chunks for a query, degrading step by step:
// semantic search is the precision path, the broad fetch guarantees that an
// answer is never silently grounded on nothing while documents exist. It
// never fails; the worst outcome is an empty context.
func (s *ChatService) Retrieve(ctx context.Context, query string) *RetrievedContext {
	if chunks := s.semanticSearch(ctx, query); len(chunks) > 0 {
		return newRetrievedContext(chunks)
	}

	chunks, err := s.chunks.ListAll(ctx, s.fallbackLimit)
	if err != nil {
		slog.Error("fallback fetch failed", "error", err)
		return &RetrievedContext{}
	}
	return newRetrievedContext(chunks)
}

func (s *ChatService) semanticSearch(ctx context.Context, query string) []domain.Chunk {
	vector, err := s.ai.Embed(ctx, query)
	if err != nil {
		slog.Warn("query embedding failed, falling back", "error", err)
		return nil
	}

	scored, err := s.chunks.SearchSimilar(ctx, vector, s.scoreThreshold, s.topK)
	if err != nil {
		slog.Warn("similarity search unavailable, falling back", "error", err)
		return nil
	}

	chunks := make([]domain.Chunk, len(scored))
	for i, sc := range scored {
		chunks[i] = sc.Chunk
	}
	return chunks
}

func newRetrievedContext(chunks []domain.Chunk) *RetrievedContext {
	rc := &RetrievedContext{Chunks: chunks}
	seen := make(map[string]bool)
	for _, c := range chunks {
		if !seen[c.DocumentName] {
			seen[c.DocumentName] = true
			rc.Documents = append(rc.Documents, c.DocumentName)
		}
	}
	return rc
}

// Ask retrieves context for the conversation's latest question and streams a
// grounded answer. The first event is always the metadata frame (reasoning
// text plus the context's document names); content deltas follow in arrival
// order and the done event terminates the stream. Generative-service errors
// before the stream starts are returned directly with no events emitted.
func (s *ChatService) Ask(ctx context.Context, turns []domain.Turn) (<-chan domain.StreamEvent, error) {
	rc := s.Retrieve(ctx, latestQuestion(turns))

	messages := withSystem(s.buildSystemPrompt(rc), turns)
	stream, err := s.ai.ChatStream(ctx, messages)
	if err != nil {
		return nil, err
	}

	// The primary request is already in flight; only the short reasoning
	// call is awaited before the frame goes out.
	reasoning := s.reason(ctx, turns)

	events := make(chan domain.StreamEvent, 64)
	go func() {
		defer close(events)

		events <- domain.StreamEvent{
			Type:          domain.EventMetadata,
			Reasoning:     reasoning,
			UsedDocuments: rc.Documents,
		}
		for token := range stream {
			select {
			case events <- domain.StreamEvent{Type: domain.EventDelta, Content: token}:
			case <-ctx.Done():
				return
			}
		}
		select {
		case events <- domain.StreamEvent{Type: domain.EventDone}:
		case <-ctx.Done():
		}
	}()

	return events, nil
}

// AskOnce is the non-streaming variant: the full answer and reasoning are
// computed server-side and returned in one response.
func (s *ChatService) AskOnce(ctx context.Context, turns []domain.Turn) (*domain.Answer, error) {
	rc := s.Retrieve(ctx, latestQuestion(turns))

	content, err := s.ai.Chat(ctx, withSystem(s.buildSystemPrompt(rc), turns))
	if err != nil {
		return nil, err
	}

	return &domain.Answer{
		Content:      content,
		Reasoning:    s.reason(ctx, turns),
		CitedSources: citation.ParseCitedSources(content),
	}, nil
}

// reason asks for a short analysis of how the question maps to the available
// documentation. A failure degrades to an empty string, never aborting the
// answer.
func (s *ChatService) reason(ctx context.Context, turns []domain.Turn) string {
	reasoning, err := s.ai.Chat(ctx, withSystem(reasoningPrompt, turns))
	if err != nil {
		slog.Warn("reasoning call failed", "error", err)
		return ""
	}
	return reasoning
}

func (s *ChatService) buildSystemPrompt(rc *RetrievedContext) string {
	var sb strings.Builder
	sb.WriteString(standingContext)

	if len(rc.Chunks) == 0 {
		sb.WriteString("\n\n")
		sb.WriteString(noContextNotice)
		return sb.String()
	}

	sb.WriteString("\n\nKONTEKSTS NO IEPIRKUMA DOKUMENTIEM:\n")
	for _, c := range rc.Chunks {
		fmt.Fprintf(&sb, "\n## %s\n%s\n", c.DocumentName, c.PlainText)
	}
	sb.WriteString("\n")
	sb.WriteString(citationDirective)
	return sb.String()
}

func withSystem(system string, turns []domain.Turn) []domain.Turn {
	messages := make([]domain.Turn, 0, len(turns)+1)
	messages = append(messages, domain.Turn{Role: domain.RoleSystem, Content: system})
	return append(messages, turns...)
}

func latestQuestion(turns []domain.Turn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == domain.RoleUser {
			return turns[i].Content
		}
	}
	if len(turns) > 0 {
		return turns[len(turns)-1].Content
	}
	return ""
}
