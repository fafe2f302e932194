package v1handler

import (
	"net/http"
	"webguard/pkg/domain"
)

type ClassifyRequest struct {
	Items []domain.ContentItem `json:"items"`
}

type ClassifyResponse struct {
	Results []domain.ItemClassification `json:"results"`
}

type AnalyzeFormsRequest struct {
	Forms []domain.FormDescriptor `json:"forms"`
}

type AnalyzeFormsResponse struct {
	Results []domain.FormAnalysis `json:"results"`
}

type ShortenedLinksRequest struct {
	Links []domain.Link `json:"links"`
}

type ShortenedLinksResponse struct {
	Links []domain.Link `json:"links"`
}

// Classify returns the verdict of every content item, in input order.
func (h Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, ClassifyResponse{
		Results: h.deps.Inspector.Classify(r.Context(), req.Items),
	})
}

// AnalyzeForms returns the analysis of every form, in input order.
func (h Handler) AnalyzeForms(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeFormsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, AnalyzeFormsResponse{
		Results: h.deps.Inspector.AnalyzeForms(r.Context(), req.Forms),
	})
}

// ShortenedLinks returns the links pointing to a known shortener.
func (h Handler) ShortenedLinks(w http.ResponseWriter, r *http.Request) {
	var req ShortenedLinksRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	links := h.deps.Inspector.FindShortenedLinks(r.Context(), req.Links)
	if links == nil {
		links = []domain.Link{}
	}
	writeJSON(r.Context(), w, http.StatusOK, ShortenedLinksResponse{Links: links})
}

// Inspect runs the classifiers enabled in the caller's settings over a page snapshot.
func (h Handler) Inspect(w http.ResponseWriter, r *http.Request) {
	var page domain.PageSnapshot
	if err := decodeJSON(r, &page); err != nil {
		h.writeError(w, r, err)

		return
	}

	report, err := h.deps.Inspector.InspectPage(r.Context(), GetUserIDFromContext(r.Context()), page)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, report)
}
