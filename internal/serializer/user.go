package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	dom "UserAPI/internal/domain"
	"UserAPI/internal/dto"

	"github.com/go-playground/validator/v10"
)

// MaxLength is the character limit on every user field.
const MaxLength = 200

const (
	msgRequired  = "This field is required."
	msgNull      = "This field may not be null."
	msgInvalid   = "Not a valid string."
	msgBlank     = "This field may not be blank."
	msgNullChar  = "Null characters are not allowed."
	nonFieldKey  = "non_field_errors"
	fieldRuleTag = "required,max=" // completed with MaxLength in NewUserSerializer
)

// userFields lists the writable fields in wire order.
var userFields = []string{"name", "email", "password"}

// ValidationError holds field-level messages. It is returned instead of
// touching storage whenever an inbound body is rejected.
type ValidationError dto.FieldErrors

func (e ValidationError) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e[k], " ")))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e ValidationError) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// ParseError means the body was not valid JSON at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "JSON parse error - " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// UserData is a validated inbound body. A nil field was absent (partial updates only).
type UserData struct {
	Name     *string
	Email    *string
	Password *string
}

// Apply copies the present fields onto u.
func (d UserData) Apply(u dom.User) dom.User {
	if d.Name != nil {
		u.Name = *d.Name
	}
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.Password != nil {
		u.Password = *d.Password
	}
	return u
}

func (d *UserData) set(field, value string) {
	v := value
	switch field {
	case "name":
		d.Name = &v
	case "email":
		d.Email = &v
	case "password":
		d.Password = &v
	}
}

// UserSerializer is the plain variant: name, email and password as
// char fields of at most MaxLength characters.
type UserSerializer struct {
	validate *validator.Validate
	rule     string
}

func NewUserSerializer() *UserSerializer {
	return &UserSerializer{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		rule:     fieldRuleTag + strconv.Itoa(MaxLength),
	}
}

// Validate decodes body and checks every field. With partial set only the
// keys present in the body are checked and returned.
func (s *UserSerializer) Validate(body []byte, partial bool) (UserData, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return UserData{}, err
	}

	var (
		data UserData
		errs = ValidationError{}
	)
	for _, field := range userFields {
		raw, ok := obj[field]
		if !ok {
			if !partial {
				errs.add(field, msgRequired)
			}
			continue
		}
		value, msg := toCharField(raw)
		if msg != "" {
			errs.add(field, msg)
			continue
		}
		msgs := s.checkValue(value)
		if len(msgs) > 0 {
			errs[field] = append(errs[field], msgs...)
			continue
		}
		data.set(field, value)
	}
	if len(errs) > 0 {
		return UserData{}, errs
	}
	return data, nil
}

// ToFields renders u without the self link.
func (s *UserSerializer) ToFields(u dom.User) dto.UserFields {
	return dto.UserFields{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
	}
}

// checkValue runs the length rules and the null-character rule on a coerced
// value and returns every message that applies.
func (s *UserSerializer) checkValue(value string) []string {
	var msgs []string
	if msg := s.checkLength(value); msg != "" {
		msgs = append(msgs, msg)
	}
	if strings.ContainsRune(value, 0) {
		msgs = append(msgs, msgNullChar)
	}
	return msgs
}

func (s *UserSerializer) checkLength(value string) string {
	err := s.validate.Var(value, s.rule)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return msgInvalid
	}
	switch verrs[0].Tag() {
	case "required":
		return msgBlank
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %d characters.", MaxLength)
	default:
		return msgInvalid
	}
}

// toCharField coerces a decoded JSON value the way a char field does:
// strings are trimmed, numbers are rendered from their parsed value, anything
// else is rejected.
func toCharField(v any) (string, string) {
	switch t := v.(type) {
	case nil:
		return "", msgNull
	case string:
		return strings.TrimSpace(t), ""
	case json.Number:
		return numberText(t), ""
	default:
		return "", msgInvalid
	}
}

// numberText renders a JSON number the way it prints once parsed: integers in
// canonical decimal form, floats in shortest round-trip form with a ".0" or an
// exponent ("1.5", "100.0", "1e+16", "1e-05", "inf").
func numberText(n json.Number) string {
	lit := n.String()
	if !strings.ContainsAny(lit, ".eE") {
		if i, ok := new(big.Int).SetString(lit, 10); ok {
			return i.String()
		}
		return lit
	}

	f, err := strconv.ParseFloat(lit, 64)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case err != nil:
		return lit
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return fixed
}

func decodeObject(body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: errors.New("extra data after JSON value")}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ValidationError{
			nonFieldKey: {fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", jsonTypeName(raw))},
		}
	}
	return obj, nil
}

func jsonTypeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "NoneType"
	case string:
		return "str"
	case bool:
		return "bool"
	case []any:
		return "list"
	case json.Number:
		if strings.ContainsAny(t.String(), ".eE") {
			return "float"
		}
		return "int"
	default:
		return "value"
	}
}
