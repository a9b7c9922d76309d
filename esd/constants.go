package esd

import (
	"fmt"
	"strconv"
	"strings"
)

// Drop tells a consuming system how to process a record. The wire form is the integer code.
type Drop int

const (
	DropDefault Drop = iota
	DropInsert
	DropUpdate
	DropDelete
	DropIgnore
)

var dropNames = map[Drop]string{
	DropDefault: "DEFAULT",
	DropInsert:  "INSERT",
	DropUpdate:  "UPDATE",
	DropDelete:  "DELETE",
	DropIgnore:  "IGNORE",
}

// String returns the constant name of d
func (d Drop) String() string {
	if name, ok := dropNames[d]; ok {
		return name
	}
	return "Drop(" + strconv.Itoa(int(d)) + ")"
}

// Valid reports whether d is one of the defined operation codes
func (d Drop) Valid() bool {
	_, ok := dropNames[d]
	return ok
}

// ParseDrop accepts a constant name (case-insensitive) or any decimal code.
// Undefined codes pass through, as they do when the integer form is decoded.
func ParseDrop(s string) (Drop, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for d, n := range dropNames {
		if n == name {
			return d, nil
		}
	}
	if n, err := strconv.Atoi(name); err == nil {
		return Drop(n), nil
	}
	return DropDefault, fmt.Errorf("unknown drop code %q", s)
}

// UnmarshalText accepts named drop constants. Drop has no MarshalText: encoders write the integer.
func (d *Drop) UnmarshalText(text []byte) error {
	parsed, err := ParseDrop(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DataType is the value type of a custom attribute
type DataType string

const (
	DataTypeString DataType = "STRING"
	DataTypeNumber DataType = "NUMBER"
)

// ResultStatus is the outcome code a producer stamps on a document
type ResultStatus int

const (
	ResultUnknown ResultStatus = iota
	ResultSuccess
	ResultFailure
	ResultPartial
)

var resultStatusNames = map[ResultStatus]string{
	ResultUnknown: "UNKNOWN",
	ResultSuccess: "SUCCESS",
	ResultFailure: "FAILURE",
	ResultPartial: "PARTIAL",
}

// ParseResultStatus accepts a constant name (case-insensitive) or any decimal code
func ParseResultStatus(s string) (ResultStatus, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for rs, n := range resultStatusNames {
		if n == name {
			return rs, nil
		}
	}
	if n, err := strconv.Atoi(name); err == nil {
		return ResultStatus(n), nil
	}
	return ResultUnknown, fmt.Errorf("unknown result status %q", s)
}

// UnmarshalText accepts named result statuses; like Drop, encoders write the integer
func (s *ResultStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseResultStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// String returns the constant name of s
func (s ResultStatus) String() string {
	if name, ok := resultStatusNames[s]; ok {
		return name
	}
	return "ResultStatus(" + strconv.Itoa(int(s)) + ")"
}

// Configs keys written by Paginate
const (
	ConfigPage       = "page"
	ConfigPageSize   = "pageSize"
	ConfigCursor     = "cursor"
	ConfigNextCursor = "nextCursor"
)
