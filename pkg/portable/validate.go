package portable

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Report JSON field names so paths match the document.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks field rules (required id and kind, non-negative scale, palette membership,
// unique connection targets) and graph rules (unique step ids, no cycles).
// Dangling connection targets are allowed.
func Validate(doc domain.Document) error {
	var errs []error

	if err := structValidator().Struct(doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, &ValidationError{Field: fieldPath(fe), Reason: reason(fe)})
		}
	}

	seen := make(map[string]int, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if n.ID == "" {
			continue
		}
		if first, dup := seen[n.ID]; dup {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("nodes[%d].id", i),
				Reason: fmt.Sprintf("duplicates nodes[%d].id %q", first, n.ID),
			})
			continue
		}
		seen[n.ID] = i
	}

	if id, ok := findCycle(doc); ok {
		errs = append(errs, &ValidationError{
			Field:  "nodes",
			Reason: fmt.Sprintf("connections loop back to %q", id),
		})
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "unique":
		return "contains duplicate values"
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}

// findCycle reports a step that can reach itself through known connections.
func findCycle(doc domain.Document) (string, bool) {
	const (
		white = iota
		grey
		black
	)
	edges := make(map[string][]string, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if _, dup := edges[n.ID]; !dup {
			edges[n.ID] = n.OutgoingConnections
		}
	}
	colour := make(map[string]int, len(edges))
	var offender string
	var visit func(id string) bool
	visit = func(id string) bool {
		colour[id] = grey
		for _, next := range edges[id] {
			if _, known := edges[next]; !known {
				continue
			}
			switch colour[next] {
			case grey:
				offender = next
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		colour[id] = black
		return false
	}
	for _, n := range doc.Nodes {
		if colour[n.ID] == white && visit(n.ID) {
			return offender, true
		}
	}
	return "", false
}
