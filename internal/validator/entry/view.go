package entry

import (
	"github.com/google/uuid"

	"declara/internal/domain"
)

// Value is one reconciled field as the evaluator sees it.
type Value struct {
	Raw          string
	Value        string
	Confidence   float64
	Source       domain.FieldSource
	DocumentType domain.DocumentType
}

// View is the evaluator's read model of an entry: the best-confidence value
// per field name, plus the per-document-type values needed for cross-document
// consistency checks.
type View struct {
	Best   map[string]Value
	ByType map[domain.DocumentType]map[string]Value
}

// BuildView folds the entry's stored fields into a View. When the same field
// name appears on several documents the highest confidence wins the Best slot.
func BuildView(docs []domain.Document, fields []domain.ExtractedField) *View {
	typeByDoc := make(map[uuid.UUID]domain.DocumentType, len(docs))
	for _, d := range docs {
		typeByDoc[d.ID] = d.Type
	}

	v := &View{
		Best:   make(map[string]Value),
		ByType: make(map[domain.DocumentType]map[string]Value),
	}
	for _, f := range fields {
		docType := typeByDoc[f.DocumentID]
		val := Value{
			Raw:          f.RawValue,
			Value:        f.NormalizedValue,
			Confidence:   f.Confidence,
			Source:       f.Source,
			DocumentType: docType,
		}
		if docType != "" {
			if v.ByType[docType] == nil {
				v.ByType[docType] = make(map[string]Value)
			}
			v.ByType[docType][f.FieldName] = val
		}
		if best, ok := v.Best[f.FieldName]; !ok || val.Confidence > best.Confidence {
			v.Best[f.FieldName] = val
		}
	}
	return v
}

// Get returns the best value for a field name.
func (v *View) Get(fieldName string) (Value, bool) {
	val, ok := v.Best[fieldName]
	return val, ok
}
