package complety

// Completed is the session outcome carrying a processed value: the stop tool
// executed successfully.
type Completed struct {
	Value any
}

// Faulted is a success-shaped envelope wrapping an explicit error. Some
// session engine versions report failures this way instead of returning a
// plain error; it is decoded here once so downstream code never pattern
// matches on engine shapes.
type Faulted struct {
	Err error
}

// Normalize maps any session outcome to exactly one value or error.
// Classification order: an explicit run error passes through unchanged; a
// Completed outcome yields its value; a Faulted outcome yields its error; an
// error used as the outcome passes through; everything else (nil included)
// becomes an *UnexpectedOutcomeError carrying the raw shape. Normalize is
// total and never panics.
func Normalize(outcome any, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	switch o := outcome.(type) {
	case Completed:
		return o.Value, nil
	case *Completed:
		if o != nil {
			return o.Value, nil
		}
	case Faulted:
		if o.Err != nil {
			return nil, o.Err
		}
	case *Faulted:
		if o != nil && o.Err != nil {
			return nil, o.Err
		}
	case error:
		return nil, o
	}
	return nil, &UnexpectedOutcomeError{Raw: outcome}
}
