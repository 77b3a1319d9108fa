package page

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/simulator"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// DefaultChatDelay is how long the chat takes to answer.
const DefaultChatDelay = time.Second

// ErrBlankQuestion rejects an empty chat question.
var ErrBlankQuestion = errors.New("question must not be blank")

// Roles of chat messages.
const (
	RoleUser   = "user"
	RoleSystem = "system"
)

// cannedReplies are the chat's only answers.
var cannedReplies = []string{
	"Ich spüre eine starke Resonanz in deiner Frage. Lass uns tiefer gehen.",
	"Dein Gedanke öffnet mehrere Bedeutungsebenen gleichzeitig.",
	"Interessant. Die semantische Struktur deiner Frage deutet auf etwas Unausgesprochenes hin.",
	"Das Interface erkennt hier ein Muster zwischen Intuition und Logik.",
	"Diese Frage schwingt auf philosophischer und technischer Ebene zugleich.",
	"Ich verstehe, was du meinst, noch bevor du es ganz formuliert hast.",
	"Die Resonanz ist deutlich. Formuliere den Gedanken ruhig weiter.",
}

// ChatMessage is one line of the chat transcript.
type ChatMessage struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Chat is the side panel that answers questions with canned replies. It
// has no connection to the thought pipeline.
type Chat struct {
	delay  time.Duration
	rnd    simulator.Rand
	logger *zap.Logger

	mu         sync.Mutex
	transcript []ChatMessage
}

// NewChat creates a Chat answering after delay.
func NewChat(delay time.Duration, rnd simulator.Rand, logger *zap.Logger) *Chat {
	if rnd == nil {
		rnd = simulator.NewRand(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chat{delay: delay, rnd: rnd, logger: logger}
}

// Ask records question and, after the chat delay, returns a canned reply.
func (c *Chat) Ask(ctx context.Context, question string) (ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return ChatMessage{}, ErrBlankQuestion
	}
	c.append(ChatMessage{Role: RoleUser, Text: question, At: timeNow().UTC()})

	if err := simulator.Sleep(ctx, c.delay); err != nil {
		return ChatMessage{}, err
	}

	reply := ChatMessage{
		Role: RoleSystem,
		Text: cannedReplies[c.rnd.IntN(len(cannedReplies))],
		At:   timeNow().UTC(),
	}
	c.append(reply)
	c.logger.Debug("chat answered", zap.Int("transcript", len(c.Transcript())))
	return reply, nil
}

func (c *Chat) append(m ChatMessage) {
	c.mu.Lock()
	c.transcript = append(c.transcript, m)
	c.mu.Unlock()
}

// Transcript returns a copy of every message so far.
func (c *Chat) Transcript() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ChatMessage(nil), c.transcript...)
}
