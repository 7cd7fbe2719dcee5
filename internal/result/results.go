package result

// Results is a read-only collection of results
type Results[T any] struct {
	results []Result[T]
}

// Collect creates a collection from the given results, keeping their order
func Collect[T any](rs ...Result[T]) Results[T] {
	cp := make([]Result[T], len(rs))
	copy(cp, rs)
	return Results[T]{results: cp}
}

// CollectOk creates a collection of successful results
func CollectOk[T any](values ...T) Results[T] {
	rs := make([]Result[T], 0, len(values))
	for _, v := range values {
		rs = append(rs, Ok(v))
	}
	return Results[T]{results: rs}
}

// Len returns the number of results
func (rs Results[T]) Len() int {
	return len(rs.results)
}

// Values returns one entry per result; failed slots are nil
func (rs Results[T]) Values() []*T {
	values := make([]*T, 0, len(rs.results))
	for _, r := range rs.results {
		if !r.IsOk() {
			values = append(values, nil)
			continue
		}
		v := r.value
		values = append(values, &v)
	}
	return values
}

// OkValues returns the values of successful results only
func (rs Results[T]) OkValues() []T {
	values := make([]T, 0, len(rs.results))
	for _, r := range rs.results {
		if r.IsOk() {
			values = append(values, r.value)
		}
	}
	return values
}

// FirstError returns the earliest failure, or nil
func (rs Results[T]) FirstError() *Error {
	for _, r := range rs.results {
		if r.err != nil {
			return r.err
		}
	}
	return nil
}

// WithOnlyFirstError collapses the collection to its first failure, or to an
// empty collection when there is none
func (rs Results[T]) WithOnlyFirstError() Results[T] {
	if err := rs.FirstError(); err != nil {
		return Collect(FromError[T](err))
	}
	return Collect[T]()
}
