package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidBank is returned when a question bank fails validation.
var ErrInvalidBank = errors.New("invalid question bank")

const bankSchemaURL = "schema://question-bank.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// Bank is the import document for questions.
type Bank struct {
	Questions []Question `json:"questions"`
}

// DecodeBank reads a question bank, validating it against the bank schema
// before decoding. Duplicate ids are rejected.
func DecodeBank(r io.Reader) (*Bank, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}

	// UnmarshalJSON keeps numbers as json.Number so integer checks are exact.
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidBank, err)
	}

	sch, err := bankValidator()
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	var bank Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	seen := make(map[string]bool, len(bank.Questions))
	for _, q := range bank.Questions {
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: duplicate question id %q", ErrInvalidBank, q.ID)
		}
		seen[q.ID] = true
	}
	return &bank, nil
}

func bankValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// Round-trip through JSON so the compiler sees plain decoded values.
		b, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = err
			return
		}
		var def any
		if err := json.Unmarshal(b, &def); err != nil {
			compileErr = err
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(bankSchemaURL)
	})
	return compiledSchema, compileErr
}
