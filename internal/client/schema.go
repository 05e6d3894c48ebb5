package client

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const schemaBaseURL = "https://bbs.invalid/schemas/"

const (
	schemaThreadList = "thread_list.schema.json"
	schemaThread     = "thread.schema.json"
	schemaPostList   = "post_list.schema.json"
	schemaPost       = "post.schema.json"
)

var (
	schemaOnce  sync.Once
	schemaErr   error
	schemaCache map[string]*jsonschema.Schema
)

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		names := []string{schemaThread, schemaPost, schemaThreadList, schemaPostList}
		for _, name := range names {
			data, err := schemaFS.ReadFile("schemas/" + name)
			if err != nil {
				schemaErr = err
				return
			}
			if err := compiler.AddResource(schemaBaseURL+name, bytes.NewReader(data)); err != nil {
				schemaErr = fmt.Errorf("add schema %s: %w", name, err)
				return
			}
		}
		compiled := make(map[string]*jsonschema.Schema, len(names))
		for _, name := range names {
			schema, err := compiler.Compile(schemaBaseURL + name)
			if err != nil {
				schemaErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			compiled[name] = schema
		}
		schemaCache = compiled
	})
	return schemaCache, schemaErr
}

// validateBody checks a raw response body against the named schema. An empty
// schema name skips validation.
func validateBody(name string, body []byte) error {
	if name == "" {
		return nil
	}
	schemas, err := compileSchemas()
	if err != nil {
		return err
	}
	schema, ok := schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}
	var doc any
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}
