package validate

import "fmt"

// Format selects how text is split into documents.
type Format int

const (
	// FormatYAMLStream splits on "---" lines and parses each section as YAML.
	FormatYAMLStream Format = iota
	// FormatKeyValue reads flat "key = value" lines into a single document.
	FormatKeyValue
)

func (f Format) String() string {
	switch f {
	case FormatYAMLStream:
		return "yaml-stream"
	case FormatKeyValue:
		return "key-value"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// FieldKind is the expected structural kind of a field.
type FieldKind int

const (
	// KindAny only requires the field to be present and non-null.
	KindAny FieldKind = iota
	KindScalar
	KindMapping
	KindSequence
)

func (k FieldKind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FieldRule requires a field at Path. Path segments are separated by dots;
// numeric segments index into sequences.
type FieldRule struct {
	Path string
	Kind FieldKind
}

// Field is shorthand for FieldRule{Path: path, Kind: kind}.
func Field(path string, kind FieldKind) FieldRule {
	return FieldRule{Path: path, Kind: kind}
}

// Schema describes the expected shape of every document in a text.
type Schema struct {
	Name   string
	Format Format
	// KindField names the field carrying the document kind. Defaults to
	// "kind". Ignored for FormatKeyValue.
	KindField string
	// ConfigKind is the kind assigned to FormatKeyValue documents.
	ConfigKind string
	// Required applies to every document.
	Required []FieldRule
	// Kinds adds rules per document kind.
	Kinds map[string][]FieldRule
	// AllowUnknownKinds accepts kinds missing from Kinds. When Kinds is
	// empty every kind is accepted.
	AllowUnknownKinds bool
}

func (s Schema) kindField() string {
	if s.KindField == "" {
		return "kind"
	}
	return s.KindField
}

// KubernetesManifest checks the manifest stream shape for the kinds the
// built-in templates emit.
func KubernetesManifest() Schema {
	return Schema{
		Name:   "kubernetes",
		Format: FormatYAMLStream,
		Required: []FieldRule{
			Field("apiVersion", KindScalar),
			Field("metadata", KindMapping),
			Field("metadata.name", KindScalar),
		},
		Kinds: map[string][]FieldRule{
			"Namespace": nil,
			"Deployment": {
				Field("spec", KindMapping),
				Field("spec.selector", KindMapping),
				Field("spec.template.spec.containers", KindSequence),
				Field("spec.template.spec.containers.0.image", KindScalar),
			},
			"HorizontalPodAutoscaler": {
				Field("spec.scaleTargetRef", KindMapping),
				Field("spec.maxReplicas", KindScalar),
			},
			"Service": {
				Field("spec", KindMapping),
			},
			"ConfigMap":   nil,
			"StatefulSet": {Field("spec.template.spec.containers", KindSequence)},
		},
	}
}

// PostgresConfig checks a postgresql.conf rendering for the settings the
// built-in template fills.
func PostgresConfig() Schema {
	return Schema{
		Name:       "postgresql",
		Format:     FormatKeyValue,
		ConfigKind: "postgresql.conf",
		Required: []FieldRule{
			Field("data_directory", KindScalar),
			Field("max_connections", KindScalar),
			Field("shared_buffers", KindScalar),
			Field("port", KindScalar),
		},
	}
}

// Builtin returns a built-in schema by name: "kubernetes" or "postgresql".
func Builtin(name string) (Schema, error) {
	switch name {
	case "kubernetes", "k8s":
		return KubernetesManifest(), nil
	case "postgresql", "postgres":
		return PostgresConfig(), nil
	default:
		return Schema{}, fmt.Errorf("validate: unknown schema %q", name)
	}
}
