package artifact

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/petrarca/loctree/internal/model"
)

//go:embed schema.json
var schemaFS embed.FS

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		data, err := schemaFS.ReadFile("schema.json")
		if err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = jsonschema.CompileString("loctree-snapshot.json", string(data))
	})
	return compiled, compileErr
}

// ValidationError wraps the causes jsonschema reports for a failed
// snapshot validation, grounded on the teacher's validation.ValidationError
// (internal/validation/validation.go), which flattens *jsonschema.ValidationError.Causes
// the same way.
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "snapshot validation failed"
	}
	return fmt.Sprintf("snapshot validation failed: %s", strings.Join(e.Errors, "; "))
}

// ValidateSnapshot checks snap's JSON encoding against the embedded
// schema before it is written, spec.md §6's schema_version contract:
// catching a structurally malformed snapshot here is cheaper than
// discovering it at a downstream consumer (HTML/SARIF rendering, MCP
// wrapper) that this spec treats as an external collaborator.
func ValidateSnapshot(snap *model.Snapshot) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	if err := schema.Validate(doc); err != nil {
		var errs []string
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			for _, cause := range ve.Causes {
				errs = append(errs, cause.Message)
			}
			if len(errs) == 0 {
				errs = append(errs, ve.Message)
			}
		} else {
			errs = append(errs, err.Error())
		}
		return ValidationError{Errors: errs}
	}
	return nil
}
