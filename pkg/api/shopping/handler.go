package shopping

import (
	"encoding/json"
	"fmt"
	"net/http"

	"npc_outfitter/pkg/core/character"
	"npc_outfitter/pkg/core/shopper"
	"npc_outfitter/pkg/core/utils"
)

// Request carries the character sheet to outfit. Format selects the
// response body: "json" (default) or "html" for a rendered report.
type Request struct {
	Character character.Character `json:"character"`
	Format    string              `json:"format,omitempty"`
}

// Response is the JSON-format answer.
type Response struct {
	Character string          `json:"character"`
	Loadout   shopper.Loadout `json:"loadout"`
}

// ErrorResponse mirrors the soft-error shape used across the core.
type ErrorResponse struct {
	Error   string `json:"error"`
	Context string `json:"context,omitempty"`
}

// Handler provides the shopping-list HTTP endpoint.
type Handler struct {
	outfitter *shopper.Outfitter
}

// NewHandler creates a new shopping handler
func NewHandler(outfitter *shopper.Outfitter) *Handler {
	return &Handler{outfitter: outfitter}
}

// HandleShoppingList suggests a full equipment loadout for one character.
func (h *Handler) HandleShoppingList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Character.FullName() == "" || req.Character.Role == "" {
		http.Error(w, "character name and role are required", http.StatusBadRequest)
		return
	}

	fmt.Printf("[DEBUG] suggesting loadout for %s (%s %s)\n",
		req.Character.FullName(), req.Character.Experience, req.Character.Role)

	loadout, serr := h.outfitter.SuggestLoadout(r.Context(), req.Character).Unpack()
	if serr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(ErrorResponse{Error: serr.Message, Context: serr.Context})
		return
	}

	if req.Format == "html" {
		html, err := utils.RenderMarkdown(loadout.Markdown(req.Character))
		if err != nil {
			http.Error(w, "failed to render report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{
		Character: req.Character.FullName(),
		Loadout:   loadout,
	})
}
