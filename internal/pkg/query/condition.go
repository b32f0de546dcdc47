package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations generate SQL fragments and parameter maps using Spanner's
// named parameter format (@paramName); paramIndex keeps generated names
// unique across the whole statement.
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

type cmpCondition struct {
	field string
	op    string
	value interface{}
}

func (c *cmpCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, paramName)
	return sql, map[string]interface{}{paramName: c.value}
}

// Eq creates an equality condition (field = value).
func Eq(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "=", value: value}
}

// Gte creates a greater-or-equal condition, used for range lower bounds.
func Gte(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: ">=", value: value}
}

// Lte creates a less-or-equal condition, used for range upper bounds.
func Lte(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "<=", value: value}
}

// Like creates a case-insensitive LIKE condition. The caller supplies the
// pattern, including any % wildcards.
func Like(field string, pattern string) Condition {
	return &likeCondition{field: field, pattern: pattern}
}

type likeCondition struct {
	field   string
	pattern string
}

func (c *likeCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("LOWER(%s) LIKE @%s", c.field, paramName)
	return sql, map[string]interface{}{paramName: strings.ToLower(c.pattern)}
}

// In creates a membership condition (field IN UNNEST(@p)).
func In(field string, values interface{}) Condition {
	return &inCondition{field: field, values: values}
}

type inCondition struct {
	field  string
	values interface{}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName)
	return sql, map[string]interface{}{paramName: c.values}
}

// Or combines conditions with OR logic inside one parenthesized group.
func Or(conditions ...Condition) Condition {
	return &orCondition{conditions: conditions}
}

type orCondition struct {
	conditions []Condition
}

func (c *orCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	parts := make([]string, 0, len(c.conditions))
	params := make(map[string]interface{})
	for _, cond := range c.conditions {
		fragment, condParams := cond.SQL(paramIndex)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}
	return "(" + strings.Join(parts, " OR ") + ")", params
}

// IsNull creates an IS NULL condition.
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

type isNullCondition struct {
	field string
}

func (c *isNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}

// IsNotNull creates an IS NOT NULL condition.
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

type isNotNullCondition struct {
	field string
}

func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
}
