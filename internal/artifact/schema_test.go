package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/loctree/internal/model"
)

func validSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Schema:        "loctree-snapshot",
		SchemaVersion: "1.0.0",
		GeneratedAt:   "2026-07-31T00:00:00Z",
		Root:          "/repo",
		Git:           model.GitIdentity{Branch: "main", Commit: "abc123", Dirty: false},
		Files:         []*model.FileAnalysis{{Path: "src/app.ts"}},
		Edges:         []model.Edge{{From: "src/app.ts", To: "src/utils.ts", Kind: model.EdgeImport}},
	}
}

func TestValidateSnapshot_AcceptsWellFormedSnapshot(t *testing.T) {
	err := ValidateSnapshot(validSnapshot())
	assert.NoError(t, err)
}

func TestValidateSnapshot_RejectsMissingRequiredFields(t *testing.T) {
	empty := &model.Snapshot{}

	var verr ValidationError
	err := ValidateSnapshot(empty)
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)
}

func TestValidationError_ErrorMessage(t *testing.T) {
	e := ValidationError{Errors: []string{"missing field: root"}}
	assert.Contains(t, e.Error(), "missing field: root")

	empty := ValidationError{}
	assert.Equal(t, "snapshot validation failed", empty.Error())
}
