package validation

import "thelab/models"

type fieldRules struct {
	key   models.FieldKey
	chain []Rule
}

// RuleSet evaluates an ordered chain of rules per field.
// The first failing rule of a chain is the field's only error, which is how
// precedence (required before length before pattern) is expressed.
type RuleSet struct {
	fields []fieldRules
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// Field appends rules to the chain of key. Calls can be chained.
func (rs *RuleSet) Field(key models.FieldKey, rules ...Rule) *RuleSet {
	for i := range rs.fields {
		if rs.fields[i].key == key {
			rs.fields[i].chain = append(rs.fields[i].chain, rules...)
			return rs
		}
	}
	rs.fields = append(rs.fields, fieldRules{key: key, chain: rules})
	return rs
}

// Validate evaluates every field against values.
// Fields without an error are absent from the result.
func (rs *RuleSet) Validate(values models.FormValues) models.FieldErrors {
	errs := make(models.FieldErrors)
	for _, fr := range rs.fields {
		if msg, ok := rs.check(fr, values); !ok {
			errs[fr.key] = msg
		}
	}
	return errs
}

// ValidateField evaluates a single field. ok is true when it passes.
func (rs *RuleSet) ValidateField(key models.FieldKey, values models.FormValues) (message string, ok bool) {
	for _, fr := range rs.fields {
		if fr.key == key {
			return rs.check(fr, values)
		}
	}
	return "", true
}

func (rs *RuleSet) check(fr fieldRules, values models.FormValues) (string, bool) {
	value := values.Get(fr.key)
	for _, rule := range fr.chain {
		if msg, ok := rule.Check(value, values); !ok {
			return msg, false
		}
	}
	return "", true
}
