// Package transport exposes the synchronizer over a JSON HTTP API.
package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
	"github.com/veilledger/veilsync/internal/synchronizer"
)

const maxTxBodyBytes = 1 << 20

// Handler serves the synchronizer API.
type Handler struct {
	engine Engine
	logger *zap.Logger
	mux    *http.ServeMux
}

// NewHandler builds the HTTP handler for the engine.
func NewHandler(engine Engine, logger *zap.Logger) *Handler {
	h := &Handler{
		engine: engine,
		logger: logger.Named("transport"),
		mux:    http.NewServeMux(),
	}
	h.mux.HandleFunc("/v1/status", h.handleStatus)
	h.mux.HandleFunc("/v1/txs", h.handleTxs)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type txBody struct {
	Hash    string `json:"hash"`
	Payload []byte `json:"payload"`
}

type txsResponse struct {
	Txs []txBody `json:"txs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.writeJSON(w, http.StatusOK, h.engine.Status())
}

func (h *Handler) handleTxs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTxs(w, r)
	case http.MethodPost:
		h.sendTx(w, r)
	default:
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) listTxs(w http.ResponseWriter, r *http.Request) {
	txs, err := h.engine.GetTxs(r.Context())
	if err != nil {
		h.logger.Error("list pending txs", zap.Error(err))
		h.writeEngineError(w, err)
		return
	}

	resp := txsResponse{Txs: make([]txBody, 0, len(txs))}
	for _, tx := range txs {
		resp.Txs = append(resp.Txs, txBody{Hash: tx.Hash.String(), Payload: tx.Payload})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) sendTx(w http.ResponseWriter, r *http.Request) {
	var body txBody
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTxBodyBytes))
	if err := decoder.Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hash, err := chainhash.NewHashFromStr(body.Hash)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid tx hash")
		return
	}

	tx := chain.Tx{Hash: *hash, Payload: body.Payload}
	if err := h.engine.SendTx(r.Context(), tx); err != nil {
		h.logger.Warn("send tx rejected", zap.Stringer("tx", tx.Hash), zap.Error(err))
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, txBody{Hash: tx.Hash.String()})
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, synchronizer.ErrNotReady):
		h.writeError(w, http.StatusServiceUnavailable, "synchronizer is not caught up")
	case errors.Is(err, synchronizer.ErrAlreadyStopped):
		h.writeError(w, http.StatusConflict, "synchronizer is stopped")
	default:
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, code int, message string) {
	h.writeJSON(w, code, errorResponse{Error: message})
}
