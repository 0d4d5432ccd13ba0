package categorize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"finance-analyzer/pkg/errors"
)

// RuleSet serializes as a JSON object mapping category names to keyword
// arrays. encoding/json maps would destroy key order, and key order is
// rule priority, so decoding walks the token stream instead.

func (rs *RuleSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, errors.CategoryConfiguration, errors.CodeInvalidConfig, "invalid categorization rules")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New(errors.CategoryConfiguration, errors.CodeInvalidConfig,
			"categorization rules must be a JSON object of category to keyword list")
	}

	rules := RuleSet{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, errors.CategoryConfiguration, errors.CodeInvalidConfig, "invalid categorization rules")
		}
		category, ok := keyTok.(string)
		if !ok {
			return errors.New(errors.CategoryConfiguration, errors.CodeInvalidConfig,
				fmt.Sprintf("unexpected rule key token: %v", keyTok))
		}

		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return errors.Wrap(err, errors.CategoryConfiguration, errors.CodeInvalidConfig,
				fmt.Sprintf("keywords for category %q must be a list of strings", category))
		}

		rules = append(rules, Rule{Category: category, Keywords: keywords})
	}

	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, errors.CategoryConfiguration, errors.CodeInvalidConfig, "invalid categorization rules")
	}

	*rs = rules
	return nil
}

func (rs RuleSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, rule := range rs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rule.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(rule.Keywords)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
