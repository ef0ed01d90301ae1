package handlers

import (
	"net/http"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
)

// ListMedia returns the cataloged media files of a wellbore, shallowest
// first, unranged files last. An optional type query parameter narrows to
// one media category (core_photo, thin_section, log_raster, document).
func ListMedia(w http.ResponseWriter, r *http.Request) {
	wellboreID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	page, limit, offset := parsePagination(r)

	q := config.DB.Model(&models.MediaCatalog{}).Where("wellbore_id = ?", wellboreID)
	if mediaType := r.URL.Query().Get("type"); mediaType != "" {
		q = q.Where("media_type = ?", mediaType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(w, apperrors.Internal("counting media", err))
		return
	}
	var media []models.MediaCatalog
	err = q.Order("top_depth_md NULLS LAST, file_path").
		Limit(limit).Offset(offset).Find(&media).Error
	if err != nil {
		respondError(w, apperrors.Internal("listing media", err))
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Total: total, Page: page, Limit: limit, Data: media})
}
