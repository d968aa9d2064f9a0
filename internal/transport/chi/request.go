package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/kailas-cloud/rentprice/internal/domain"
)

const maxRequestBytes = 64 << 10

var (
	errNotInteger = errors.New("must be an integer")
	errNotBoolean = errors.New("must be a boolean")
)

type fieldDecoder struct {
	name   string
	decode func(raw json.RawMessage) error
}

// listingFields maps request fields to Listing fields. Order defines the
// order of validation details.
func listingFields(l *domain.Listing) []fieldDecoder {
	return []fieldDecoder{
		{"bedrooms", intInto(&l.Bedrooms)},
		{"bathrooms", intInto(&l.Bathrooms)},
		{"size", intInto(&l.Size)},
		{"subwayDistance", intInto(&l.SubwayDistance)},
		{"floor", intInto(&l.Floor)},
		{"buildingAge", intInto(&l.BuildingAge)},
		{"noFee", boolInto(&l.NoFee)},
		{"hasRoofdeck", boolInto(&l.HasRoofdeck)},
		{"hasWasherDryer", boolInto(&l.HasWasherDryer)},
		{"hasDoorman", boolInto(&l.HasDoorman)},
		{"hasElevator", boolInto(&l.HasElevator)},
		{"hasDishwasher", boolInto(&l.HasDishwasher)},
		{"hasPatio", boolInto(&l.HasPatio)},
		{"hasGym", boolInto(&l.HasGym)},
	}
}

// decodeListing reads a prediction request. Unknown fields are ignored.
// Any failure is a *domain.ValidationError: body-level problems under the
// "body" field, otherwise every missing, null or mistyped field in order.
func decodeListing(body io.Reader) (domain.Listing, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return domain.Listing{}, bodyError(bodyReason(err))
	}
	if raw == nil {
		return domain.Listing{}, bodyError("field required")
	}

	var (
		l       domain.Listing
		details []domain.FieldError
	)
	for _, f := range listingFields(&l) {
		v, ok := raw[f.name]
		if !ok || string(v) == "null" {
			details = append(details, domain.FieldError{Field: f.name, Reason: "field required"})
			continue
		}
		if err := f.decode(v); err != nil {
			details = append(details, domain.FieldError{Field: f.name, Reason: err.Error()})
		}
	}
	if len(details) > 0 {
		return domain.Listing{}, domain.NewValidationError(details...)
	}
	return l, nil
}

func bodyReason(err error) string {
	var (
		tooLarge  *http.MaxBytesError
		typeError *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, io.EOF):
		return "field required"
	case errors.As(err, &tooLarge):
		return fmt.Sprintf("exceeds %d bytes", tooLarge.Limit)
	case errors.As(err, &typeError):
		return "must be a JSON object"
	default:
		return "invalid JSON"
	}
}

func bodyError(reason string) error {
	return domain.NewValidationError(domain.FieldError{Field: "body", Reason: reason})
}

// intInto accepts JSON numbers without a fractional part, so 600, 600.0 and
// 6e2 all decode to 600. Strings are rejected.
func intInto(dst *int) func(json.RawMessage) error {
	return func(raw json.RawMessage) error {
		var n json.Number
		if len(raw) == 0 || raw[0] == '"' || json.Unmarshal(raw, &n) != nil {
			return errNotInteger
		}
		if i, err := n.Int64(); err == nil {
			*dst = int(i)
			return nil
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return errNotInteger
		}
		*dst = int(f)
		return nil
	}
}

func boolInto(dst *bool) func(json.RawMessage) error {
	return func(raw json.RawMessage) error {
		if err := json.Unmarshal(raw, dst); err != nil {
			return errNotBoolean
		}
		return nil
	}
}
