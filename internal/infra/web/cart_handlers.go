package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"school-platform/internal/domain"
	"school-platform/internal/infra/logging"
	"school-platform/internal/infra/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const cartIDHeader = "X-Cart-ID"

// cartID reads the client's cart identifier, minting a fresh one when absent.
// The chosen ID is always echoed back so the client can persist it.
func cartID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(cartIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(cartIDHeader, id)
	return id
}

type cartAddRequest struct {
	BookID string `json:"book_id"`
}

func (s *Server) cartGetHandler(w http.ResponseWriter, r *http.Request) {
	cart, err := s.cartUC.Get(r.Context(), cartID(w, r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) cartAddHandler(w http.ResponseWriter, r *http.Request) {
	var req cartAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookID == "" {
		writeError(w, http.StatusBadRequest, "Missing book_id")
		return
	}
	cart, err := s.cartUC.Add(r.Context(), cartID(w, r), req.BookID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Book not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) cartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookID")
	cart, err := s.cartUC.Remove(r.Context(), cartID(w, r), bookID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type checkoutResponse struct {
	OrderID     string   `json:"order_id"`
	AmountIRR   int64    `json:"amount_irr"`
	Status      string   `json:"status"`
	AccessCodes []string `json:"access_codes"`
}

func (s *Server) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logging.With(ctx, s.log)

	id := cartID(w, r)
	order, codes, err := s.checkoutUC.Checkout(ctx, id)
	switch {
	case errors.Is(err, domain.ErrCartEmpty):
		writeError(w, http.StatusBadRequest, "Cart is empty")
		return
	case errors.Is(err, domain.ErrPaymentDeclined):
		metrics.IncCharge(s.providerName, "declined")
		writeError(w, http.StatusPaymentRequired, "Payment declined")
		return
	case err != nil:
		l.Error().Err(err).Str("cart_id", id).Msg("checkout failed")
		writeError(w, http.StatusInternalServerError, "Checkout failed")
		return
	}

	metrics.IncCharge(s.providerName, "paid")
	metrics.AddChargedAmount(order.AmountIRR)
	metrics.AddAccessCodesMinted(len(codes))
	l.Info().Str("order_id", order.ID).Int64("amount_irr", order.AmountIRR).Msg("checkout complete")
	writeJSON(w, http.StatusCreated, checkoutResponse{
		OrderID:     order.ID,
		AmountIRR:   order.AmountIRR,
		Status:      string(order.Status),
		AccessCodes: codes,
	})
}
