package source

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/scene2video/internal/scene"
)

//go:embed schema.cue
var schemaSource string

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("project failed validation: %s", strings.Join(e.Problems, "; "))
}

// ValidateFile checks a project file against the document schema.
func ValidateFile(path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read project: %w", err)
	}
	return ValidateDocument(data, format)
}

// ValidateDocument checks raw document bytes against the schema. Type
// mismatches that the decoder would silently drop are reported here.
func ValidateDocument(data []byte, format Format) error {
	var doc interface{}
	switch format {
	case JSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if list, ok := doc.([]interface{}); ok {
		doc = map[string]interface{}{"scenes": list}
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return validateJSON(encoded)
}

// Validate checks an already decoded project.
func Validate(p scene.Project) error {
	encoded, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	return validateJSON(encoded)
}

func validateJSON(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Project"))

	doc := ctx.CompileBytes(data, cue.Filename("project.json"))
	if err := doc.Err(); err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		verr := &ValidationError{}
		for _, e := range cueerrors.Errors(err) {
			verr.Problems = append(verr.Problems, e.Error())
		}
		return verr
	}
	return nil
}
