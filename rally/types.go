package rally

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Object is a Rally object as returned by the API. The client imposes
// no schema beyond envelope unwrapping.
type Object map[string]any

// Ref returns the object's _ref, or an empty string
func (o Object) Ref() string {
	return o.String("_ref")
}

// String returns the value of key if it is a string
func (o Object) String(key string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return ""
}

// Decode copies the object's fields into out, which must be a pointer to
// a struct. Fields are matched by their mapstructure tag or name.
func (o Object) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(o)); err != nil {
		return fmt.Errorf("failed to decode rally object: %w", err)
	}
	return nil
}

// User is the subset of a Rally user record the client relies on
type User struct {
	Ref          string `mapstructure:"_ref"`
	ObjectID     int64  `mapstructure:"ObjectID"`
	EmailAddress string `mapstructure:"EmailAddress"`
	UserName     string `mapstructure:"UserName"`
	DisplayName  string `mapstructure:"DisplayName"`
}

// GetDisplayName returns the best available display name for the user
func (u *User) GetDisplayName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.UserName != "" {
		return u.UserName
	}
	return u.EmailAddress
}

// envelopeKind identifies which wrapper a response used
type envelopeKind int

const (
	envelopeNone envelopeKind = iota
	envelopeOperation
	envelopeCreate
	envelopeQuery
)

var envelopeKeys = map[string]envelopeKind{
	"OperationResult": envelopeOperation,
	"CreateResult":    envelopeCreate,
	"QueryResult":     envelopeQuery,
}

// String returns the wrapper key for the kind
func (k envelopeKind) String() string {
	switch k {
	case envelopeOperation:
		return "OperationResult"
	case envelopeCreate:
		return "CreateResult"
	case envelopeQuery:
		return "QueryResult"
	default:
		return "none"
	}
}

// result is the common shape of the three envelope payloads
type result struct {
	Errors           []string `json:"Errors"`
	Warnings         []string `json:"Warnings"`
	Object           Object   `json:"Object"`
	Results          []Object `json:"Results"`
	TotalResultCount int      `json:"TotalResultCount"`
	StartIndex       int      `json:"StartIndex"`
	PageSize         int      `json:"PageSize"`
}

// response is a decoded API response: either an unwrapped envelope or a
// raw object.
type response struct {
	kind   envelopeKind
	result result
	raw    []byte
}
