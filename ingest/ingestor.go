package ingest

import (
	"context"
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wellbase/wellbase/lake"
	"github.com/wellbase/wellbase/pkg/apperrors"
)

// Ingestor runs the bulk loaders. Each file loads inside one transaction,
// so a half-bad file never leaves a partial import behind; individually
// unparseable or unmatchable rows are skipped and counted instead.
type Ingestor struct {
	db       *gorm.DB
	log      *zap.Logger
	mappings Mappings
	store    lake.BlobStore
}

// New builds an Ingestor. The blob store is only touched by the LAS
// loader; pass nil when curves are not being loaded.
func New(db *gorm.DB, log *zap.Logger, mappings Mappings, store lake.BlobStore) *Ingestor {
	if mappings == nil {
		mappings = DefaultMappings()
	}
	return &Ingestor{db: db, log: log, mappings: mappings, store: store}
}

// FromEnv builds an Ingestor from the environment: field mappings from
// the FIELD_MAPPING file when set (built-in defaults otherwise) and the
// curve lake from LAKE_BUCKET, falling back to the LAKE_PATH directory.
func FromEnv(ctx context.Context, db *gorm.DB, log *zap.Logger) (*Ingestor, error) {
	mappings := DefaultMappings()
	if path := os.Getenv("FIELD_MAPPING"); path != "" {
		loaded, err := LoadMappings(path)
		if err != nil {
			return nil, apperrors.Configuration("loading field mappings from %s: %v", path, err)
		}
		mappings = loaded
	}

	spec := os.Getenv("LAKE_BUCKET")
	if spec == "" {
		spec = os.Getenv("LAKE_PATH")
	}
	store, err := lake.Open(ctx, spec)
	if err != nil {
		return nil, apperrors.Configuration("opening curve lake %q: %v", spec, err)
	}
	return New(db, log, mappings, store), nil
}

// mapping fetches the alias table for a dataset kind.
func (in *Ingestor) mapping(key string) (FieldMapping, error) {
	fm, ok := in.mappings[key]
	if !ok || len(fm) == 0 {
		return nil, apperrors.Configuration("no field mapping %q configured", key)
	}
	return fm, nil
}

// resolveWellbores maps normalized UWIs to the id of each well's default
// "OH" wellbore. UWIs without a well in the database are simply absent
// from the result.
func resolveWellbores(tx *gorm.DB, uwis []string) (map[string]uuid.UUID, error) {
	out := make(map[string]uuid.UUID, len(uwis))
	if len(uwis) == 0 {
		return out, nil
	}
	var rows []struct {
		UWI string
		ID  uuid.UUID
	}
	err := tx.Table("wellbores").
		Select("wells.uwi AS uwi, wellbores.id AS id").
		Joins("JOIN wells ON wells.id = wellbores.well_id").
		Where("wellbores.name = ? AND wells.uwi IN ?", "OH", uwis).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal("resolving wellbores by uwi", err)
	}
	for _, r := range rows {
		out[r.UWI] = r.ID
	}
	return out, nil
}

// attributesJSON marshals the unmapped-column bag, returning nil for an
// empty bag so the jsonb column stays NULL instead of holding "{}".
func attributesJSON(attrs map[string]string) datatypes.JSON {
	if len(attrs) == 0 {
		return nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
