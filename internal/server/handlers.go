package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/valpere/perevod/internal/lang"
	"github.com/valpere/perevod/internal/pipeline"
	"github.com/valpere/perevod/internal/translator"
)

// kindInvalidInput marks requests rejected before the pipeline runs.
const kindInvalidInput = "invalid_input"

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source" binding:"omitempty,oneof=en ru auto"`
	Target string `json:"target" binding:"omitempty,oneof=en ru"`
}

type translateResponse struct {
	Translation string `json:"translation"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Warning     string `json:"warning,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleTranslate(c *gin.Context) {
	var body translateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error(), Kind: kindInvalidInput})
		return
	}

	pair, err := s.resolvePair(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: kindInvalidInput})
		return
	}

	req, err := pipeline.NewRequest(body.Text, pair)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: kindInvalidInput})
		return
	}

	out, err := s.translator.Translate(c.Request.Context(), req)
	if err != nil {
		resp := errorResponse{Error: err.Error()}
		if kind, ok := translator.KindOf(err); ok {
			resp.Kind = string(kind)
		}
		s.logger.Warn("translation failed",
			zap.String("request_id", GetRequestID(c)),
			zap.String("kind", resp.Kind),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, resp)
		return
	}

	resp := translateResponse{
		Translation: out,
		Source:      pair.Source.String(),
		Target:      pair.Target.String(),
	}
	if s.validator != nil {
		if verr := s.validator.Check(out, pair.Target); verr != nil {
			resp.Warning = verr.Error()
		}
	}
	c.JSON(http.StatusOK, resp)
}

// resolvePair fills in defaults: source en, target the other language.
func (s *Server) resolvePair(body translateRequest) (lang.Pair, error) {
	if body.Source == "auto" {
		if s.detector == nil {
			return lang.Pair{}, errors.New("source auto-detection is not enabled")
		}
		p := s.detector.Pair(body.Text)
		if body.Target != "" {
			p.Target = lang.Language(body.Target)
		}
		return p, nil
	}

	source := body.Source
	if source == "" {
		source = lang.English.String()
	}
	target := body.Target
	if target == "" {
		target = lang.Russian.String()
		if source == lang.Russian.String() {
			target = lang.English.String()
		}
	}
	return lang.ParsePair(source, target)
}
