package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"chatrelay/internal/httputil"
)

// Proxy mirrors the backend protocol under the local /api prefix, translating
// only the destination host. Status codes pass through unchanged.
type Proxy struct {
	gateway *Gateway
	logger  *slog.Logger
}

// NewProxy creates the browser-facing forwarding surface over a gateway.
func NewProxy(gateway *Gateway, logger *slog.Logger) *Proxy {
	return &Proxy{gateway: gateway, logger: logger}
}

// Chat forwards a chat turn body unchanged.
// POST /api/chat
//
// The backend sometimes answers with a non-structured body; the response is
// read as text first and forwarded raw, with the original status, when it is
// not valid JSON.
func (p *Proxy) Chat(w http.ResponseWriter, r *http.Request) {
	status, body, err := p.forward(r, http.MethodPost, "/chat")
	if err != nil {
		httputil.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}

	if json.Valid(body) {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(status)
	w.Write(body)
}

// UploadPDF forwards a multipart upload unchanged.
// POST /api/upload-pdf
func (p *Proxy) UploadPDF(w http.ResponseWriter, r *http.Request) {
	p.forwardJSON(w, r, http.MethodPost, "/upload-pdf")
}

// ListDocuments forwards the document listing, preserving the query string.
// GET /api/documents?conversation_id=
func (p *Proxy) ListDocuments(w http.ResponseWriter, r *http.Request) {
	p.forwardJSON(w, r, http.MethodGet, "/documents")
}

// DeleteDocument forwards a document removal.
// DELETE /api/documents/{doc_id}?conversation_id=
func (p *Proxy) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := r.PathValue("doc_id")
	if docID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document id is required")
		return
	}
	p.forwardJSON(w, r, http.MethodDelete, "/documents/"+url.PathEscape(docID))
}

// forwardJSON forwards a request whose backend response is always structured.
// Backend failures keep their status with the backend's reason; local
// failures synthesize a 502 with a reason.
func (p *Proxy) forwardJSON(w http.ResponseWriter, r *http.Request, method, path string) {
	status, body, err := p.forward(r, method, path)
	if err != nil {
		httputil.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}
	if status >= 300 {
		httputil.RespondError(w, status, reasonFromBody(status, body))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func (p *Proxy) forward(r *http.Request, method, path string) (int, []byte, error) {
	target := p.gateway.baseURL + path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), method, target, r.Body)
	if err != nil {
		return 0, nil, err
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := p.gateway.client.Do(req)
	if err != nil {
		p.logger.Error("proxy forward failed", "method", method, "path", path, "error", err)
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
