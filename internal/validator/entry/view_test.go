package entry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"declara/internal/domain"
)

func TestBuildViewBestConfidenceWins(t *testing.T) {
	gdID, awbID := uuid.New(), uuid.New()
	docs := []domain.Document{
		{ID: gdID, Type: domain.DocTypeGD},
		{ID: awbID, Type: domain.DocTypeAWB},
	}
	fields := []domain.ExtractedField{
		{DocumentID: gdID, FieldName: "consignee", NormalizedValue: "Manila Trading Corp", Confidence: 0.92, Source: domain.SourceVision},
		{DocumentID: awbID, FieldName: "consignee", NormalizedValue: "Manila Trading", Confidence: 0.65, Source: domain.SourceProximity},
		{DocumentID: awbID, FieldName: "gross_weight", NormalizedValue: "250", Confidence: 0.88, Source: domain.SourcePattern},
	}

	view := BuildView(docs, fields)

	best, ok := view.Get("consignee")
	require.True(t, ok)
	assert.Equal(t, "Manila Trading Corp", best.Value)
	assert.Equal(t, domain.DocTypeGD, best.DocumentType)

	assert.Equal(t, "Manila Trading", view.ByType[domain.DocTypeAWB]["consignee"].Value)
	assert.Equal(t, "250", view.ByType[domain.DocTypeAWB]["gross_weight"].Value)

	_, ok = view.Get("hs_code")
	assert.False(t, ok)
}

func TestBuildViewIgnoresOrphanFields(t *testing.T) {
	fields := []domain.ExtractedField{
		{DocumentID: uuid.New(), FieldName: "hs_code", NormalizedValue: "8471300000", Confidence: 0.88},
	}

	view := BuildView(nil, fields)

	// No owning document means no per-type slot, but Best still resolves.
	assert.Empty(t, view.ByType)
	_, ok := view.Get("hs_code")
	assert.True(t, ok)
}
