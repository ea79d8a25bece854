package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/parisxmas/OxiSign/internal/service"
)

type DocumentHandler struct {
	preparer service.Preparer
	template []byte
}

func NewDocumentHandler(preparer service.Preparer, template []byte) *DocumentHandler {
	return &DocumentHandler{preparer: preparer, template: template}
}

// FillNDA renders the filled, locked NDA and returns the bytes directly,
// without involving the provider.
func (h *DocumentHandler) FillNDA(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Address   string `json:"address"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.preparer.Prepare(h.template, map[string]string{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"address":   req.Address,
	})
	if err != nil {
		log.Printf("fill-nda: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="nda-filled.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.Write(out)
}
