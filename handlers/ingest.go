package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wellbase/wellbase/ingest"
	"github.com/wellbase/wellbase/pkg/apperrors"
)

const uploadDir = "./uploads"

// Dataset kinds the upload endpoint accepts, matching the CLI loaders.
const (
	datasetHeaders    = "headers"
	datasetTops       = "tops"
	datasetProduction = "production"
	datasetSurveys    = "surveys"
	datasetLAS        = "las"
)

// UploadDataset receives a multipart data file and runs the loader for
// the dataset named in the path. The file is staged under the upload
// directory first so a failed load can be replayed, then loaded inside
// one transaction; the response carries the loader's row accounting.
//
// For surveys, optional azimuthReference and azimuthOffset form fields
// apply to every survey in the file, and activate=true activates each
// loaded survey and recomputes its trajectory. Activation failures are
// reported per survey; the loaded rows stay either way.
func UploadDataset(w http.ResponseWriter, r *http.Request) {
	dataset := mux.Vars(r)["dataset"]
	switch dataset {
	case datasetHeaders, datasetTops, datasetProduction, datasetSurveys, datasetLAS:
	default:
		respondError(w, apperrors.Validation("unknown dataset %q, expected headers|tops|production|surveys|las", dataset))
		return
	}

	if err := r.ParseMultipartForm(50 << 20); err != nil {
		respondError(w, apperrors.Validation("bad multipart form: %v", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, apperrors.Validation("missing file field: %v", err))
		return
	}
	defer file.Close()

	staged, err := stageUpload(dataset, header.Filename, file)
	if err != nil {
		respondError(w, err)
		return
	}

	in, err := ingestor(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	body := map[string]interface{}{
		"dataset":  dataset,
		"file":     header.Filename,
		"stagedAs": filepath.Base(staged),
	}

	var stats interface{}
	switch dataset {
	case datasetHeaders:
		stats, err = in.IngestHeaders(r.Context(), staged)
	case datasetTops:
		stats, err = in.IngestTops(r.Context(), staged)
	case datasetProduction:
		stats, err = in.IngestProduction(r.Context(), staged)
	case datasetSurveys:
		opts := ingest.SurveyOptions{AzimuthReference: r.FormValue("azimuthReference")}
		if raw := r.FormValue("azimuthOffset"); raw != "" {
			offset, parseErr := strconv.ParseFloat(raw, 64)
			if parseErr != nil {
				respondError(w, apperrors.Validation("azimuthOffset %q is not a number", raw))
				return
			}
			opts.AzimuthOffset = offset
		}
		var surveyStats *ingest.SurveyStats
		surveyStats, err = in.IngestSurveys(r.Context(), staged, opts)
		stats = surveyStats
		if err == nil && r.FormValue("activate") != "" {
			activate, parseErr := strconv.ParseBool(r.FormValue("activate"))
			if parseErr != nil {
				respondError(w, apperrors.Validation("activate %q is not a boolean", r.FormValue("activate")))
				return
			}
			if activate {
				body["activated"] = activateLoaded(r, surveyStats.SurveyIDs)
			}
		}
	case datasetLAS:
		stats, err = in.IngestLAS(r.Context(), staged)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	body["stats"] = stats
	respondJSON(w, http.StatusOK, body)
}

// activateLoaded activates each freshly loaded survey and recomputes its
// wellbore. One failed activation does not roll back the load or stop the
// rest; the outcome is reported per survey.
func activateLoaded(r *http.Request, ids []uuid.UUID) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		entry := map[string]interface{}{"surveyId": id}
		result, err := trajectoryEngine().ActivateSurvey(r.Context(), id)
		if err != nil {
			entry["error"] = err.Error()
			entry["kind"] = string(apperrors.KindOf(err))
		} else {
			entry["points"] = len(result.Geometry.Points)
			entry["updatedTops"] = result.UpdatedTops
		}
		out = append(out, entry)
	}
	return out
}

// stageUpload copies the uploaded stream to disk under a timestamped name
// so concurrent uploads of the same file never collide.
func stageUpload(dataset, filename string, src io.Reader) (string, error) {
	dir := filepath.Join(uploadDir, dataset)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.Internal("creating upload directory", err)
	}
	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("%s-%s", timestamp, filepath.Base(filename)))

	dst, err := os.Create(path)
	if err != nil {
		return "", apperrors.Internal("creating staged file", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", apperrors.Internal("saving staged file", err)
	}
	return path, nil
}
