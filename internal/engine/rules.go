package engine

import "volunteer-backend/internal/metadata"

// EvaluateRules runs the entity's compiled check rules against the
// validated change-set. The first failing rule terminates the pipeline
// with its declared code; an evaluation error is an internal failure.
func EvaluateRules(entity *metadata.Entity, fields map[string]any, action string) *AppError {
	for i := range entity.Rules {
		r := &entity.Rules[i]
		if !r.AppliesTo(action) {
			continue
		}
		ok, err := r.Eval(fields, action)
		if err != nil {
			return InternalError(err)
		}
		if !ok {
			return NewAppError(r.Code, 400, r.Message)
		}
	}
	return nil
}
