package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const statisticsSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"fecha_actualizacion": {"type": ["string", "null"]},
		"total_votaciones": {"type": ["integer", "string", "null"]},
		"campos_disponibles": {"type": ["array", "null"]}
	}
}`

const votingSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"votaciones": {"type": ["array", "null"]},
		"metadata": {"type": ["object", "null"]}
	}
}`

// envelopeSchemas holds the compiled schemas for both resources
type envelopeSchemas struct {
	statistics *jsonschema.Schema
	voting     *jsonschema.Schema
}

func compileSchemas() (*envelopeSchemas, error) {
	statistics, err := compileSchema(StatisticsResource, statisticsSchema)
	if err != nil {
		return nil, err
	}
	voting, err := compileSchema(VotingResource, votingSchema)
	if err != nil {
		return nil, err
	}
	return &envelopeSchemas{statistics: statistics, voting: voting}, nil
}

func compileSchema(resource, schema string) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	schemaURL := fmt.Sprintf("https://legislativo.schemas.local/%s.schema.json", strings.TrimSuffix(resource, ".json"))
	if err := c.AddResource(schemaURL, strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("schema load failed for %s: %w", resource, err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("schema compile failed for %s: %w", resource, err)
	}
	return compiled, nil
}

// validate checks that data is well-formed JSON matching schema
func validate(schema *jsonschema.Schema, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return err
	}
	return nil
}
