// Package agent orchestrates one assistant: it decides whether an utterance
// is small talk or a real question, runs the RAG pipeline, sanitizes the
// answer for speech and hands the result back to the session.
package agent

import (
	"context"
	"log"
	"strings"

	"NexiAssistant/app/metrics"
	"NexiAssistant/app/models"
	"NexiAssistant/app/rag"
	"NexiAssistant/app/speech"
	"NexiAssistant/app/storage"
)

// SayFunc delivers a finished reply into the session that asked.
type SayFunc func(ctx context.Context, text string) error

// weakAnswerLength: sanitized RAG answers shorter than this are treated as
// retrieval misses.
const weakAnswerLength = 15

type Nexi struct {
	model   models.Interface
	engine  rag.Interface
	store   storage.Interface
	metrics *metrics.Metrics
}

func New(model models.Interface, engine rag.Interface, store storage.Interface, m *metrics.Metrics) *Nexi {
	return &Nexi{
		model:   model,
		engine:  engine,
		store:   store,
		metrics: m,
	}
}

// Greet speaks the fixed opening line when a session starts.
func (n *Nexi) Greet(ctx context.Context, say SayFunc) {
	if err := say(ctx, Greeting); err != nil {
		log.Printf("⚠️ Error sending greeting: %v", err)
	}
}

// HandleTranscript answers one final user transcript. Runs in its own
// goroutine per utterance; a failure ends in the spoken error reply, never in
// silence.
func (n *Nexi) HandleTranscript(ctx context.Context, sessionID, text string, say SayFunc) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	log.Printf("👤 [%s] User said: %s", sessionID, text)

	n.saveExchange(ctx, sessionID, "user", text)

	reply, err := n.composeReply(ctx, text)
	if err != nil {
		log.Printf("❌ Error answering %q: %v", text, err)
		if n.metrics != nil {
			n.metrics.AnswerFailures.Inc()
		}
		reply = ErrorReply
	}

	if err := say(ctx, reply); err != nil {
		log.Printf("⚠️ Error delivering reply to session %s: %v", sessionID, err)
		return
	}
	if n.metrics != nil {
		n.metrics.ReplyLength.Observe(float64(len(reply)))
	}
	n.saveExchange(ctx, sessionID, "assistant", reply)
}

func (n *Nexi) composeReply(ctx context.Context, query string) (string, error) {
	if kind, casual := speech.Classify(query); casual {
		if n.metrics != nil {
			n.metrics.CasualTotal.Inc()
		}
		return speech.CannedReply(kind), nil
	}

	answer, err := n.engine.Answer(ctx, query)
	if err != nil {
		return "", err
	}
	clean := speech.CleanForSpeech(answer)

	var prompt string
	if isWeakAnswer(answer, clean) {
		if n.metrics != nil {
			n.metrics.FallbackTotal.Inc()
		}
		prompt = fallbackPrompt(query)
	} else {
		prompt = buddyPrompt(query, clean)
	}

	reply, err := n.model.Think(ctx, []models.Message{
		{Role: "system", Content: Instructions},
		{Role: "user", Content: prompt},
	}, 0.3, 100)
	if err != nil {
		return "", err
	}

	return speech.CleanForSpeech(reply), nil
}

// isWeakAnswer reports whether the RAG answer signals a retrieval miss, using
// the raw answer for phrasing and the sanitized one for length.
func isWeakAnswer(answer, clean string) bool {
	lower := strings.ToLower(answer)
	if strings.Contains(lower, "don't know") ||
		strings.Contains(lower, "cannot") ||
		strings.Contains(lower, strings.ToLower(rag.NotAvailableAnswer)) {
		return true
	}
	return len(strings.TrimSpace(clean)) < weakAnswerLength
}

func (n *Nexi) saveExchange(ctx context.Context, sessionID, role, content string) {
	if n.store == nil {
		return
	}
	err := n.store.SaveExchange(ctx, storage.Exchange{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	})
	if err != nil {
		log.Printf("⚠️ Error saving %s exchange for session %s: %v", role, sessionID, err)
	}
}
