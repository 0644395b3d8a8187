package handlers

import (
	"net/http"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/preview"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/wizard"
)

type productLinesResponse struct {
	Items []wizard.ProductLine `json:"items"`
}

type createSessionRequest struct {
	ProductLine string `json:"productLine"`
}

type adviceRequest struct {
	Field domain.Field `json:"field"`
	Value int          `json:"value"`
}

func (e *Env) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleProductLines serves GET /api/configurator/product-lines.
func (e *Env) HandleProductLines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, productLinesResponse{Items: wizard.ProductLines()})
}

// HandleSessions serves POST /api/configurator/sessions {productLine}.
func (e *Env) HandleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	view, err := e.Wizard.Create(r.Context(), req.ProductLine)
	if err != nil {
		e.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandleSession serves /api/configurator/sessions/{id}.
//
// GET   -> current step view
// PATCH -> merge a partial configuration owned by the current step
func (e *Env) HandleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		view, err := e.Wizard.Get(r.Context(), r.PathValue("id"))
		e.respondView(w, r, view, err)
	case http.MethodPatch:
		var p domain.Patch
		if err := decodeJSON(r, &p); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		view, err := e.Wizard.Update(r.Context(), r.PathValue("id"), p)
		e.respondView(w, r, view, err)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (e *Env) HandleNext(w http.ResponseWriter, r *http.Request) {
	view, err := e.Wizard.Next(r.Context(), r.PathValue("id"))
	e.respondView(w, r, view, err)
}

func (e *Env) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	view, err := e.Wizard.Previous(r.Context(), r.PathValue("id"))
	e.respondView(w, r, view, err)
}

func (e *Env) HandleReset(w http.ResponseWriter, r *http.Request) {
	view, err := e.Wizard.Reset(r.Context(), r.PathValue("id"))
	e.respondView(w, r, view, err)
}

// HandleAdvice closes the advice dialog of a dimension field with a value.
func (e *Env) HandleAdvice(w http.ResponseWriter, r *http.Request) {
	var req adviceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	view, err := e.Wizard.ResolveAdvice(r.Context(), r.PathValue("id"), req.Field, req.Value)
	e.respondView(w, r, view, err)
}

func (e *Env) HandleRefreshPricing(w http.ResponseWriter, r *http.Request) {
	view, err := e.Wizard.RefreshPricing(r.Context(), r.PathValue("id"))
	e.respondView(w, r, view, err)
}

func (e *Env) HandlePrice(w http.ResponseWriter, r *http.Request) {
	b, err := e.Wizard.Price(r.Context(), r.PathValue("id"))
	if err != nil {
		e.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// HandlePreview serves the scene as JSON.
func (e *Env) HandlePreview(w http.ResponseWriter, r *http.Request) {
	sc, err := e.Wizard.Preview(r.Context(), r.PathValue("id"))
	if err != nil {
		e.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// HandlePreviewSVG serves the same scene rendered as SVG.
func (e *Env) HandlePreviewSVG(w http.ResponseWriter, r *http.Request) {
	sc, err := e.Wizard.Preview(r.Context(), r.PathValue("id"))
	if err != nil {
		e.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(preview.SVG(sc))
}

func (e *Env) respondView(w http.ResponseWriter, r *http.Request, view wizard.StepView, err error) {
	if err != nil {
		e.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
