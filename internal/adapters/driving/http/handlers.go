package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns ready once the database is reachable and the AI services are configured
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is not ready"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database not ready")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache not ready")
			return
		}
	}
	if s.services != nil && !s.services.Ready() {
		writeError(w, http.StatusServiceUnavailable, "ai services not configured")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Ask endpoint

// handleAsk godoc
// @Summary      Ask a question
// @Description  Answer a question from the knowledge base. The question is screened against guardrail rules before retrieval and the response is scanned and sanitized before delivery. A refused question still returns 200 with guardrail_triggered set.
// @Tags         Ask
// @Accept       json
// @Produce      json
// @Param        request  body      domain.AskRequest  true  "Question and retrieval options"
// @Success      200      {object}  domain.Answer
// @Failure      400      {object}  ErrorResponse  "Empty or over-long query"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Failure      503      {object}  ErrorResponse  "AI service unavailable"
// @Router       /api/v1/ask [post]
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req domain.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.askService.Ask(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyQuery):
			writeError(w, http.StatusBadRequest, "query is required")
		case errors.Is(err, domain.ErrQueryTooLong):
			writeError(w, http.StatusBadRequest, "query exceeds maximum length")
		case errors.Is(err, domain.ErrServiceUnavailable):
			writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "failed to answer question")
		}
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// Document endpoints

// ingestRequest represents a document ingestion request
// @Description Document ingestion request
type ingestRequest struct {
	Title     string `json:"title" example:"UIF Claim Basics"`
	Category  string `json:"category" example:"process" enums:"process,eligibility,benefits,general"`
	SourceRef string `json:"source_ref,omitempty" example:"uif-guide-2025.pdf"`
	Content   string `json:"content"`
}

// IngestFailureResponse reports a failed ingestion together with how
// many chunks had been committed before the failure
// @Description Failed ingestion report
type IngestFailureResponse struct {
	Error           string `json:"error" example:"embedding service unavailable"`
	DocumentID      string `json:"document_id,omitempty" example:"c2a7c5de-54fb-4f52-a98e-2d69b9f40f11"`
	ChunksCommitted int    `json:"chunks_committed" example:"3"`
}

// handleIngestDocument godoc
// @Summary      Ingest a document
// @Description  Chunk, embed, and store a knowledge document. The document becomes retrievable once every chunk batch has been embedded and persisted. On a mid-ingestion failure the response reports how many chunks were committed before the failure; the document stays visible with a chunk count of 0.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        request  body      ingestRequest  true  "Document to ingest"
// @Success      201      {object}  domain.KnowledgeDocument
// @Failure      400      {object}  ErrorResponse          "Missing title, category, or content"
// @Failure      500      {object}  IngestFailureResponse  "Ingestion failed mid-way"
// @Failure      503      {object}  IngestFailureResponse  "Embedding service unavailable"
// @Router       /api/v1/documents [post]
func (s *Server) handleIngestDocument(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := s.ingestionService.Ingest(r.Context(), &domain.KnowledgeDocument{
		Title:     req.Title,
		Category:  req.Category,
		SourceRef: req.SourceRef,
		Content:   req.Content,
	})
	if err != nil {
		var ingErr *domain.IngestError
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &ingErr):
			status := http.StatusInternalServerError
			message := "failed to ingest document"
			if errors.Is(err, domain.ErrServiceUnavailable) {
				status = http.StatusServiceUnavailable
				message = "embedding service unavailable"
			}
			writeJSON(w, status, IngestFailureResponse{
				Error:           message,
				DocumentID:      ingErr.DocumentID,
				ChunksCommitted: ingErr.Committed,
			})
		case errors.Is(err, domain.ErrServiceUnavailable):
			writeError(w, http.StatusServiceUnavailable, "embedding service unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "failed to ingest document")
		}
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// handleListDocuments godoc
// @Summary      List documents
// @Description  List knowledge documents, newest first. Content is omitted from list responses.
// @Tags         Documents
// @Produce      json
// @Param        limit   query     int  false  "Maximum number of documents (default 20, max 100)"
// @Param        offset  query     int  false  "Number of documents to skip"
// @Success      200     {array}   domain.KnowledgeDocument
// @Header       200     {integer} X-Total-Count  "Total number of stored documents"
// @Failure      500     {object}  ErrorResponse  "Internal server error"
// @Router       /api/v1/documents [get]
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	docs, err := s.ingestionService.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	total, err := s.ingestionService.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count documents")
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))

	if docs == nil {
		docs = []*domain.KnowledgeDocument{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// handleGetDocument godoc
// @Summary      Get document
// @Description  Get a knowledge document by ID
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.KnowledgeDocument
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /api/v1/documents/{id} [get]
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.ingestionService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get document")
		}
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// handleGetDocumentChunks godoc
// @Summary      Get document with chunks
// @Description  Get a knowledge document together with its stored chunks
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.DocumentWithChunks
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /api/v1/documents/{id}/chunks [get]
func (s *Server) handleGetDocumentChunks(w http.ResponseWriter, r *http.Request) {
	doc, err := s.ingestionService.GetWithChunks(r.Context(), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get document chunks")
		}
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// handleDeactivateDocument godoc
// @Summary      Deactivate document
// @Description  Hide a document's chunks from retrieval without deleting them
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /api/v1/documents/{id}/deactivate [post]
func (s *Server) handleDeactivateDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.ingestionService.Deactivate(r.Context(), r.PathValue("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to deactivate document")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// handleDeleteDocument godoc
// @Summary      Delete document
// @Description  Delete a document and all of its chunks
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Document not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /api/v1/documents/{id} [delete]
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.ingestionService.Delete(r.Context(), r.PathValue("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete document")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Helper functions

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
