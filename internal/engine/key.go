package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ivlev/scene2video/internal/scene"
)

// keyDomain separates plan keys from any other hash computed over the same bytes.
const keyDomain = "scene2video/plan/v1"

// ContentKey identifies a project by content. Two projects share a key, and
// therefore a plan, only when their canonical encodings match after NFC
// normalization. The encoding keeps every field: an absent collection and an
// empty one encode differently, and non-finite numbers are tagged instead of
// failing the encode.
func ContentKey(p scene.Project) (string, error) {
	data, err := json.Marshal(canonical(reflect.ValueOf(p)))
	if err != nil {
		return "", fmt.Errorf("failed to encode project: %w", err)
	}
	data = norm.NFC.Bytes(data)

	h := sha256.New()
	h.Write([]byte(keyDomain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// canonical converts v into maps, slices and scalars that encoding/json can
// always encode. Struct fields are keyed by their json name with omitempty
// ignored, nil slices become null, and NaN/Inf become tagged strings.
func canonical(v reflect.Value) interface{} {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return canonical(v.Elem())
	case reflect.Struct:
		t := v.Type()
		out := make(map[string]interface{}, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = field.Name
			}
			out[name] = canonical(v.Field(i))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		out := make([]interface{}, v.Len())
		for i := range out {
			out[i] = canonical(v.Index(i))
		}
		return out
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		switch {
		case math.IsNaN(f):
			return "NaN"
		case math.IsInf(f, 1):
			return "+Inf"
		case math.IsInf(f, -1):
			return "-Inf"
		}
		return f
	default:
		return v.Interface()
	}
}
