package runtime

import (
	"log"

	"NexiAssistant/app/agent"
)

const (
	SessionStarted = "session_started"
	Transcript     = "transcript"
	SessionClosed  = "session_closed"
)

// Event is one occurrence inside a session: the session opening, a final
// user transcript, or the session closing. Say is how handlers reply.
type Event struct {
	Type        string
	SessionID   string
	Text        string
	Say         agent.SayFunc
	HandlerFunc func(r *Runtime, ev Event) string
}

var EventsHandlerFuncDefault = map[string]func(r *Runtime, ev Event) string{
	SessionStarted: func(r *Runtime, ev Event) string {
		log.Printf("🎤 Session %s started", ev.SessionID)
		if r.metrics != nil {
			r.metrics.SessionsStarted.Inc()
			r.metrics.ActiveSessions.Inc()
		}
		if ev.Say != nil {
			go r.assistant.Greet(r.ctx, ev.Say)
		}
		return SessionStarted
	},

	Transcript: func(r *Runtime, ev Event) string {
		if ev.Text == "" || ev.Say == nil {
			return Transcript
		}
		if r.metrics != nil {
			r.metrics.TranscriptsReceived.Inc()
		}
		// one answer task per utterance, so a slow retrieval never blocks
		// the event loop
		go r.assistant.HandleTranscript(r.ctx, ev.SessionID, ev.Text, ev.Say)
		return Transcript
	},

	SessionClosed: func(r *Runtime, ev Event) string {
		log.Printf("👋 Session %s closed", ev.SessionID)
		if r.metrics != nil {
			r.metrics.ActiveSessions.Dec()
		}
		return SessionClosed
	},
}
