package budget

import (
	"bytes"
	"encoding/json"
	"fmt"

	"finance-analyzer/pkg/errors"

	"github.com/shopspring/decimal"
)

// CategoryLimits serializes as a JSON object mapping category names to
// numeric limits. Key order is alert emission order, so decoding walks
// the token stream instead of going through a map.

func (cl *CategoryLimits) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, errors.CategoryConfiguration, errors.CodeInvalidConfig, "invalid category limits")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New(errors.CategoryConfiguration, errors.CodeInvalidConfig,
			"category limits must be a JSON object of category to number")
	}

	limits := CategoryLimits{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, errors.CategoryConfiguration, errors.CodeInvalidConfig, "invalid category limits")
		}
		category, ok := keyTok.(string)
		if !ok {
			return errors.New(errors.CategoryConfiguration, errors.CodeInvalidConfig,
				fmt.Sprintf("unexpected limit key token: %v", keyTok))
		}

		valueTok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, errors.CategoryConfiguration, errors.CodeInvalidConfig, "invalid category limits")
		}
		number, ok := valueTok.(json.Number)
		if !ok {
			return errors.New(errors.CategoryConfiguration, errors.CodeInvalidConfig,
				fmt.Sprintf("limit for category %q must be a number", category))
		}
		limit, err := decimal.NewFromString(number.String())
		if err != nil {
			return errors.Wrap(err, errors.CategoryConfiguration, errors.CodeInvalidConfig,
				fmt.Sprintf("limit for category %q is not a valid amount", category))
		}

		limits = append(limits, CategoryLimit{Category: category, Limit: limit})
	}

	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, errors.CategoryConfiguration, errors.CodeInvalidConfig, "invalid category limits")
	}

	*cl = limits
	return nil
}

func (cl CategoryLimits) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, limit := range cl {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(limit.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(limit.Limit.String())
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
