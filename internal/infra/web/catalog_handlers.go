package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"school-platform/internal/domain"
	"school-platform/internal/infra/metrics"

	"github.com/go-chi/chi/v5"
)

type bookCreateRequest struct {
	Subject     string `json:"subject"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentURL  string `json:"content_url"`
	PriceIRR    int64  `json:"price_irr"`
}

func (s *Server) booksListHandler(w http.ResponseWriter, r *http.Request) {
	books, err := s.catalogUC.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list books")
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) bookCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req bookCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	book, err := s.catalogUC.Create(r.Context(), req.Subject, req.Title, req.Description, req.ContentURL, req.PriceIRR)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Missing or invalid book fields")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create book")
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (s *Server) bookUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	book, err := s.catalogUC.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Book not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load book")
		return
	}

	var req bookCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Subject != "" {
		book.Subject = req.Subject
	}
	if req.Title != "" {
		book.Title = req.Title
	}
	if req.Description != "" {
		book.Description = req.Description
	}
	if req.ContentURL != "" {
		book.ContentURL = req.ContentURL
	}
	if req.PriceIRR > 0 {
		book.PriceIRR = req.PriceIRR
	}

	if err := s.catalogUC.Update(r.Context(), book); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Missing or invalid book fields")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update book")
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) bookDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.catalogUC.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Book not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete book")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type codesGenerateRequest struct {
	Count     int        `json:"count"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (s *Server) codesGenerateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req codesGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	codes, err := s.catalogUC.GenerateAccessCodes(r.Context(), id, req.Count, req.ExpiresAt)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "Invalid code count")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Book not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to generate codes")
		}
		return
	}

	metrics.AddAccessCodesMinted(len(codes))
	writeJSON(w, http.StatusCreated, map[string]interface{}{"codes": codes})
}
