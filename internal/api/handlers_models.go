// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package api

import (
	"net/http"
)

// Models returns the image models, text models and voices.
//
// @Summary List available models
// @Description Image models are a fixed allow-list. Text models and voices come from the upstream text models list, cached; when it cannot be fetched a default voice set is returned.
// @Tags Models
// @Produce json
// @Success 200 {object} catalog.Models "Model catalog"
// @Router /models [get]
func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	respondJSON(w, http.StatusOK, h.models.Models(r.Context()))
}
