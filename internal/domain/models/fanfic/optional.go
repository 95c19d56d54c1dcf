package fanfic

// OptionalString tracks tri-state semantics for nullable columns in PATCH updates.
// This is transport-agnostic (no JSON tags) - handlers map from httputil.OptionalString.
//   - Present=false: field absent from request (don't change)
//   - Present=true, Value=nil: field is null (clear)
//   - Present=true, Value=&"text": field has value
type OptionalString struct {
	Present bool
	Value   *string
}

// Set returns a present OptionalString holding v.
func Set(v string) OptionalString {
	return OptionalString{Present: true, Value: &v}
}

// Null returns a present OptionalString that clears the column.
func Null() OptionalString {
	return OptionalString{Present: true}
}

// Apply writes the value into dst when present.
func (o OptionalString) Apply(dst **string) {
	if !o.Present {
		return
	}
	if o.Value == nil {
		*dst = nil
		return
	}
	v := *o.Value
	*dst = &v
}

// ListResult is the envelope returned by list operations.
type ListResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResult builds a ListResult, normalizing nil to an empty slice.
func NewListResult[T any](items []T) *ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{Items: items, Total: len(items)}
}
