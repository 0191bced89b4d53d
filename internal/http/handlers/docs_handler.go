package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetScheduledTripManifestPDF returns the printable trip manifest (inline).
func (h Handler) GetScheduledTripManifestPDF(c *gin.Context) {
	pdfBytes, filename, err := h.Docs.GenerateTripManifest(c.Request.Context(), pathID(c))
	if err != nil {
		h.readError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
