package validator

import "github.com/garrettladley/arcgauge/internal/xerrors"

type Validator interface {
	// Validate reports per-field problems keyed by field name.
	// returns nil if no errors are found
	Validate() map[string]string
}

func Validate(v Validator) *xerrors.Error {
	if fields := v.Validate(); len(fields) > 0 {
		return xerrors.Validation(fields)
	}
	return nil
}

// Merge folds the fields of every validator into one map. Messages for a
// repeated field are joined with "; ".
func Merge(vs ...Validator) map[string]string {
	var out map[string]string
	for _, v := range vs {
		for k, msg := range v.Validate() {
			if out == nil {
				out = make(map[string]string)
			}
			if _, dup := out[k]; dup {
				msg = out[k] + "; " + msg
			}
			out[k] = msg
		}
	}
	return out
}
