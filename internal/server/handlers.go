package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"

	"github.com/pomelo-edu/pomelo/internal/feedback"
	"github.com/pomelo-edu/pomelo/internal/llm"
)

// FeedbackRequest is the body of /api/prompt and /api/feedback. Level and
// analysis type accept a key, prompt value or label.
type FeedbackRequest struct {
	Level        string `json:"level"`
	AnalysisType string `json:"analysisType"`
	Depth        int    `json:"depth"`
	Text         string `json:"text"`
}

// ParseRequest is the body of /api/parse.
type ParseRequest struct {
	Raw string `json:"raw"`
}

// PromptResponse is returned by /api/prompt.
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// FeedbackResponse is returned by /api/feedback.
type FeedbackResponse struct {
	RequestID string          `json:"requestId"`
	Model     string          `json:"model"`
	Raw       string          `json:"raw"`
	Feedback  feedback.Parsed `json:"feedback"`
}

// OptionsResponse lists the selectable request parameters.
type OptionsResponse struct {
	Levels        []feedback.LevelOption    `json:"levels"`
	AnalysisTypes []feedback.AnalysisOption `json:"analysisTypes"`
	Depths        []feedback.DepthOption    `json:"depths"`
	Defaults      DefaultsResponse          `json:"defaults"`
}

// DefaultsResponse holds the form defaults.
type DefaultsResponse struct {
	Level        feedback.Level        `json:"level"`
	AnalysisType feedback.AnalysisType `json:"analysisType"`
	Depth        feedback.Depth        `json:"depth"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleOptions(c *gin.Context) {
	def := feedback.DefaultRequest()
	c.JSON(http.StatusOK, OptionsResponse{
		Levels:        feedback.LevelOptions,
		AnalysisTypes: feedback.AnalysisOptions,
		Depths:        feedback.DepthOptions,
		Defaults: DefaultsResponse{
			Level:        def.Level,
			AnalysisType: def.AnalysisType,
			Depth:        def.Depth,
		},
	})
}

func (s *Server) handlePrompt(c *gin.Context) {
	req, ok := s.bindFeedbackRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, PromptResponse{Prompt: feedback.BuildPrompt(req)})
}

func (s *Server) handleFeedback(c *gin.Context) {
	if s.svc == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "no model provider configured"})
		return
	}

	req, ok := s.bindFeedbackRequest(c)
	if !ok {
		return
	}

	id := uuid.NewString()
	ctx := llm.WithPurpose(c.Request.Context(), "api-feedback")
	raw, err := s.svc.Generate(ctx, req)
	if err != nil {
		c.Error(err)
		var reqErr *feedback.RequestError
		if errors.As(err, &reqErr) {
			s.logger.Warn("feedback request failed",
				zap.String("request_id", id),
				zap.Error(reqErr.Err),
			)
			c.JSON(http.StatusBadGateway, errorResponse{Error: reqErr.Message()})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, FeedbackResponse{
		RequestID: id,
		Model:     s.svc.ModelID(),
		Raw:       raw,
		Feedback:  feedback.Parse(raw),
	})
}

func (s *Server) handleParse(c *gin.Context) {
	raw, ok := s.readBody(c, s.schemas.parse)
	if !ok {
		return
	}
	var body ParseRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, feedback.Parse(body.Raw))
}

// bindFeedbackRequest validates and decodes a feedback body. It writes the
// 400 response itself and reports false on failure.
func (s *Server) bindFeedbackRequest(c *gin.Context) (feedback.Request, bool) {
	raw, ok := s.readBody(c, s.schemas.feedback)
	if !ok {
		return feedback.Request{}, false
	}

	var body FeedbackRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return feedback.Request{}, false
	}

	req, err := body.toRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return feedback.Request{}, false
	}
	return req, true
}

// maxBodyBytes bounds request bodies: a long learner text or model reply
// fits with room to spare.
const maxBodyBytes = 1 << 20

func (s *Server) readBody(c *gin.Context, sch *jsonschema.Schema) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	raw, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "read body: " + err.Error()})
		return nil, false
	}
	if err := validateBody(sch, raw); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}
	return raw, true
}

func (b FeedbackRequest) toRequest() (feedback.Request, error) {
	level, err := feedback.ParseLevel(b.Level)
	if err != nil {
		return feedback.Request{}, err
	}
	analysis, err := feedback.ParseAnalysisType(b.AnalysisType)
	if err != nil {
		return feedback.Request{}, err
	}
	depth, err := feedback.ParseDepth(b.Depth)
	if err != nil {
		return feedback.Request{}, err
	}
	req := feedback.Request{Level: level, AnalysisType: analysis, Depth: depth, Text: b.Text}
	if err := req.Validate(); err != nil {
		return feedback.Request{}, err
	}
	return req, nil
}
