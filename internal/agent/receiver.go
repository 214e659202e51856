package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/nammasuttu/feedsim/internal/event"
	"github.com/nammasuttu/feedsim/internal/forwarder"
)

// Receiver accepts forwarded feed envelopes, runs extraction, and persists
// the results. It also exposes start/stop control over the rotation loop.
type Receiver struct {
	extractor Extractor
	analyzer  Analyzer
	writer    Writer
	forwarder *forwarder.Forwarder
	mux       *http.ServeMux
}

// ReceiverOption configures the Receiver.
type ReceiverOption func(*Receiver)

// WithAnalyzer enables media summarization for posts carrying a media URL.
func WithAnalyzer(a Analyzer) ReceiverOption {
	return func(r *Receiver) { r.analyzer = a }
}

// WithForwarder attaches the rotation loop controlled by /trigger and
// /stop.
func WithForwarder(f *forwarder.Forwarder) ReceiverOption {
	return func(r *Receiver) { r.forwarder = f }
}

// NewReceiver wires the agent endpoints. writer may be nil; extraction
// results are then only logged.
func NewReceiver(extractor Extractor, writer Writer, opts ...ReceiverOption) *Receiver {
	r := &Receiver{extractor: extractor, writer: writer, mux: http.NewServeMux()}
	for _, opt := range opts {
		opt(r)
	}
	r.mux.HandleFunc("/agent", r.handleAgent)
	r.mux.HandleFunc("/trigger", r.handleTrigger)
	r.mux.HandleFunc("/stop", r.handleStop)
	return r
}

// Handler returns the root handler for ListenAndServe.
func (r *Receiver) Handler() http.Handler {
	return r.mux
}

type receivedResponse struct {
	Status     string `json:"status"`
	DataLength int    `json:"data_length"`
}

type controlResponse struct {
	Status string `json:"status"`
}

// handleAgent accepts any platform envelope, flattens it to its post
// list, and processes each post. Extraction and persistence failures are
// logged per post and never fail the request.
func (r *Receiver) handleAgent(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf(`{"error": %q}`, err.Error()), http.StatusBadRequest)
		return
	}

	posts := flatten(payload)
	for _, post := range posts {
		r.process(req.Context(), post)
	}

	writeJSON(w, receivedResponse{Status: "received", DataLength: len(posts)})
}

func (r *Receiver) process(ctx context.Context, post map[string]any) {
	fact, err := r.extractor.Extract(post)
	if err != nil {
		log.Printf("[agent] extraction skipped: %v", err)
		return
	}

	if r.analyzer != nil && fact.MediaURL != "" {
		summary, err := r.analyzer.Analyze(ctx, fact.MediaURL)
		if err != nil {
			log.Printf("[agent] media analysis failed: %v", err)
		} else if summary != "" {
			fact.Description = fmt.Sprintf("%s [media: %s]", fact.Description, summary)
		}
	}

	if r.writer == nil {
		log.Printf("[agent] extracted fact (no writer): %s @ %s", fact.Description, fact.Location)
		return
	}
	e := event.Event{
		Title:       fact.Description,
		Description: fact.Description,
		Location:    fact.Location,
		Timestamp:   fact.StartTime,
		Category:    fact.Category,
		Media:       fact.MediaURL,
	}
	if err := r.writer.Insert(ctx, e); err != nil {
		log.Printf("[agent] persisting fact: %v", err)
	}
}

// handleTrigger starts the rotation loop in the background.
func (r *Receiver) handleTrigger(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	if r.forwarder == nil {
		http.Error(w, `{"error": "no forwarder configured"}`, http.StatusNotImplemented)
		return
	}
	if r.forwarder.Running() {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, controlResponse{Status: "already running"})
		return
	}
	go func() {
		if err := r.forwarder.Run(context.Background()); err != nil && err != context.Canceled {
			log.Printf("[agent] rotation stopped: %v", err)
		}
	}()
	writeJSON(w, controlResponse{Status: "started"})
}

// handleStop cancels the rotation loop.
func (r *Receiver) handleStop(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	if r.forwarder != nil {
		r.forwarder.Stop()
	}
	writeJSON(w, controlResponse{Status: "stopping"})
}

// flatten reduces any platform envelope to its list of posts: reports
// (nammasuttu), data list (instagram/twitter), data.children (reddit), or
// events (eventbrite).
func flatten(payload map[string]any) []map[string]any {
	var raw []any
	switch {
	case payload["reports"] != nil:
		raw, _ = payload["reports"].([]any)
	case payload["events"] != nil:
		raw, _ = payload["events"].([]any)
	default:
		switch data := payload["data"].(type) {
		case []any:
			raw = data
		case map[string]any:
			if children, ok := data["children"].([]any); ok {
				raw = children
			} else if inner, ok := data["data"].([]any); ok {
				raw = inner
			}
		}
	}

	posts := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if post, ok := item.(map[string]any); ok {
			posts = append(posts, post)
		}
	}
	return posts
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[agent] encoding response: %v", err)
	}
}

// ListenAndServe runs the agent server until the listener fails.
func (r *Receiver) ListenAndServe(addr string) error {
	log.Printf("[agent] receiver listening on %s", addr)
	if err := http.ListenAndServe(addr, r.mux); err != nil {
		return fmt.Errorf("agent server: %w", err)
	}
	return nil
}
