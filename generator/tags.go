package generator

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/BaSui01/schemaflow/types"
)

// splitTag separates a json tag into its name and option parts.
func splitTag(tag string) (name, opts string, hasOpts bool) {
	return strings.Cut(tag, ",")
}

// isFieldRequired decides whether a field lands in the required list:
// an explicit validate:"required" always does, pointer fields never do,
// and tagged non-pointer fields do unless marked omitempty.
func isFieldRequired(field reflect.StructField) bool {
	if strings.Contains(field.Tag.Get("validate"), "required") {
		return true
	}
	if field.Type.Kind() == reflect.Pointer {
		return false
	}
	tag, ok := field.Tag.Lookup("json")
	if !ok || tag == "-" {
		return false
	}
	_, opts, _ := splitTag(tag)
	return !strings.Contains(opts, "omitempty")
}

// applyFieldTags copies constraint tags from a struct field onto its
// schema. Unknown or malformed values are ignored rather than failing the
// generation.
func applyFieldTags(s *types.JSONSchema, tag reflect.StructTag) {
	if desc := tag.Get("description"); desc != "" {
		s.Description = desc
	}
	if format := tag.Get("format"); format != "" {
		s.Format = types.StringFormat(format)
	}
	if pattern := tag.Get("pattern"); pattern != "" {
		s.Pattern = pattern
	}

	if v, ok := intTag(tag, "minLength"); ok {
		s.MinLength = &v
	}
	if v, ok := intTag(tag, "maxLength"); ok {
		s.MaxLength = &v
	}
	if v, ok := intTag(tag, "minItems"); ok {
		s.MinItems = &v
	}
	if v, ok := intTag(tag, "maxItems"); ok {
		s.MaxItems = &v
	}
	if tag.Get("uniqueItems") == "true" {
		unique := true
		s.UniqueItems = &unique
	}

	if v, ok := floatTag(tag, "minimum"); ok {
		s.Minimum = &v
	}
	if v, ok := floatTag(tag, "maximum"); ok {
		s.Maximum = &v
	}
	if v, ok := floatTag(tag, "exclusiveMinimum"); ok {
		s.ExclusiveMinimum = &v
	}
	if v, ok := floatTag(tag, "exclusiveMaximum"); ok {
		s.ExclusiveMaximum = &v
	}

	if enum := tag.Get("enum"); enum != "" {
		for _, value := range strings.Split(enum, ",") {
			s.Enum = append(s.Enum, value)
		}
	}

	applyValidateTag(s, tag.Get("validate"))
}

// applyValidateTag maps the common go-playground validate directives onto
// schema constraints: oneof, min, max and email.
func applyValidateTag(s *types.JSONSchema, tag string) {
	if tag == "" {
		return
	}
	for _, part := range strings.Split(tag, ",") {
		switch {
		case strings.HasPrefix(part, "oneof="):
			if len(s.Enum) == 0 {
				for _, value := range strings.Fields(strings.TrimPrefix(part, "oneof=")) {
					s.Enum = append(s.Enum, value)
				}
			}
		case strings.HasPrefix(part, "min="):
			if v, err := strconv.ParseFloat(strings.TrimPrefix(part, "min="), 64); err == nil {
				if s.Type == types.SchemaTypeString {
					n := int(v)
					s.MinLength = &n
				} else {
					s.Minimum = &v
				}
			}
		case strings.HasPrefix(part, "max="):
			if v, err := strconv.ParseFloat(strings.TrimPrefix(part, "max="), 64); err == nil {
				if s.Type == types.SchemaTypeString {
					n := int(v)
					s.MaxLength = &n
				} else {
					s.Maximum = &v
				}
			}
		case part == "email":
			s.Format = types.FormatEmail
		case part == "uuid":
			s.Format = types.FormatUUID
		case part == "uri", part == "url":
			s.Format = types.FormatURI
		}
	}
}

func intTag(tag reflect.StructTag, name string) (int, bool) {
	raw := tag.Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func floatTag(tag reflect.StructTag, name string) (float64, bool) {
	raw := tag.Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
