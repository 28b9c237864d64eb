package feedback

import (
	"context"
	"fmt"

	"github.com/pomelo-edu/pomelo/internal/llm"
)

// RequestFailedMessage is the text shown to the learner when the model call
// fails, whatever the underlying cause.
const RequestFailedMessage = "Échec de la génération du feedback. Vérifiez votre clé API et votre connexion réseau."

// RequestError wraps a failed model call. It is the only error Generate
// returns once the request itself is valid.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("feedback generation: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Message returns the learner-facing description of the failure.
func (e *RequestError) Message() string {
	return RequestFailedMessage
}

// Config holds feedback generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns defaults sized for a ~250 word feedback body plus the
// synthesis and self-check blocks.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}

// Service builds the prompt, calls the model once and hands back its reply.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a feedback service around an already configured
// provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// ModelID reports the model answering requests.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}

// Generate returns the raw model reply for req. Invalid requests fail with
// the validation error before any call; a failed call yields *RequestError.
// Nothing is retried.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	ctx = llm.WithDefaultPurpose(ctx, "feedback")

	llmReq := llm.UserPrompt(BuildPrompt(req))
	llmReq.MaxTokens = s.cfg.MaxTokens
	llmReq.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, llmReq)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	return resp.Text, nil
}

// Result is the outcome of one ticketed request.
type Result struct {
	Ticket   Ticket
	Raw      string
	Feedback Parsed
	Err      error
}

// Run generates and parses feedback for a ticket issued by a Session.
func (s *Service) Run(ctx context.Context, t Ticket) Result {
	raw, err := s.Generate(ctx, t.Request)
	if err != nil {
		return Result{Ticket: t, Err: err}
	}
	return Result{Ticket: t, Raw: raw, Feedback: Parse(raw)}
}
