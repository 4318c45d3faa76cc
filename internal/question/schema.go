package question

// bankSchema is the JSON schema every imported question bank must satisfy.
var bankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type":  "array",
			"items": questionSchema,
		},
	},
	"required":             []any{"questions"},
	"additionalProperties": false,
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":         map[string]any{"type": "string", "minLength": 1},
		"section":    map[string]any{"type": "string", "enum": []any{"ela", "math"}},
		"category":   map[string]any{"type": "string", "minLength": 1},
		"difficulty": map[string]any{"type": "integer", "minimum": 1, "maximum": 3},
		"type":       map[string]any{"type": "string", "minLength": 1},
		"stem":       map[string]any{"type": "string"},
		"passage_id": map[string]any{"type": "string"},
		"options": map[string]any{
			"type":  "array",
			"items": optionSchema,
		},
	},
	"required":             []any{"id", "section", "category", "difficulty", "type"},
	"additionalProperties": false,
}

// optionSchema admits exactly one of the two option variants.
var optionSchema = map[string]any{
	"oneOf": []any{
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"kind":  map[string]any{"const": "choice"},
				"label": map[string]any{"type": "string", "minLength": 1},
				"text":  map[string]any{"type": "string"},
			},
			"required":             []any{"kind", "label", "text"},
			"additionalProperties": false,
		},
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"kind": map[string]any{"const": "freeform"},
				"text": map[string]any{"type": "string"},
			},
			"required":             []any{"kind", "text"},
			"additionalProperties": false,
		},
	},
}
