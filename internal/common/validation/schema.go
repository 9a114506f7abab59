package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// queryParametersSchema describes the wire shape the extraction model must
// return. Known fields are type-checked strictly; unknown extras pass so a
// chatty completion does not force the defaults fallback. A wrong type or an
// unknown intent does.
const queryParametersSchema = `{
  "type": "object",
  "properties": {
    "intent": {
      "type": "string",
      "enum": [
        "price",
        "compare",
        "advice",
        "product_search",
        "review_rating",
        "brand_origin",
        "general_info",
        "out_of_scope"
      ]
    },
    "domain": {
      "type": "array",
      "items": {"type": "string"}
    },
    "category": {
      "type": "array",
      "items": {"type": "string"}
    },
    "products": {
      "type": "array",
      "items": {"type": "string"}
    },
    "brands": {
      "type": "array",
      "items": {"type": "string"}
    },
    "price_range": {
      "type": ["object", "null"],
      "properties": {
        "min_price": {"type": ["number", "null"]},
        "max_price": {"type": ["number", "null"]}
      }
    },
    "attributes": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": {"type": ["string", "number"]}
      }
    },
    "comparative_attributes": {
      "type": "array",
      "items": {"type": "string"}
    },
    "web_search_query": {"type": "string"}
  }
}`

type Validator struct {
	schema *gojsonschema.Schema
}

func NewValidator() (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(queryParametersSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile query parameters schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateQueryParameters checks a raw extraction payload against the wire
// schema and returns the collected violation messages.
func (v *Validator) ValidateQueryParameters(raw []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid query parameters: %v", msgs)
	}
	return nil
}
