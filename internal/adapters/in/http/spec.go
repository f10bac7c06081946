package http

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// SwaggerInstance is the swag registry name the docs UI reads the contract from.
const SwaggerInstance = "mes"

//go:embed openapi.yaml
var openAPISpec []byte

var registerDocs sync.Once

// LoadSpec parses and validates the embedded API contract.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}

	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}

	return doc, nil
}

// swaggerDoc serves a fixed JSON document to the swag registry.
type swaggerDoc string

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

func registerSwagger(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocs.Do(func() {
		swag.Register(SwaggerInstance, swaggerDoc(raw))
	})
	return nil
}
