package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed cv.schema.json
var cvSchema string

var schemaLoader = gojsonschema.NewStringLoader(cvSchema)

// ValidateMap validates a generic map against the canonical CV schema.
// Unlike Normalize it is strict: wrong types and unknown fields are errors.
func ValidateMap(m map[string]interface{}) error {
	return validate(gojsonschema.NewGoLoader(m))
}

// ValidateCV checks that a CV serializes to the canonical schema.
func ValidateCV(cv CV) error {
	return validate(gojsonschema.NewGoLoader(cv))
}

func validate(doc gojsonschema.JSONLoader) error {
	res, err := gojsonschema.Validate(schemaLoader, doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
