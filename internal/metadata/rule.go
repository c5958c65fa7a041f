package metadata

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Rule is a declarative check attached to an entity descriptor, evaluated
// against the validated change-set. The expression must yield a boolean;
// false fails the request with the rule's code and message.
//
// Environment: record (the change-set), action ("create" or "update").
type Rule struct {
	Name    string
	On      string // "create", "update" or "" for both
	Expr    string
	Code    string
	Message string

	program *vm.Program
}

// Compile type-checks and compiles the rule expression.
func (r *Rule) Compile() error {
	program, err := expr.Compile(r.Expr,
		expr.Env(ruleEnv{}),
		expr.AsBool(),
	)
	if err != nil {
		return fmt.Errorf("compile rule %s: %w", r.Name, err)
	}
	r.program = program
	return nil
}

// AppliesTo reports whether the rule runs for the given action.
func (r *Rule) AppliesTo(action string) bool {
	return r.On == "" || r.On == action
}

// Eval runs the compiled expression. Compile must have been called.
func (r *Rule) Eval(record map[string]any, action string) (bool, error) {
	out, err := expr.Run(r.program, ruleEnv{Record: record, Action: action})
	if err != nil {
		return false, fmt.Errorf("rule %s: %w", r.Name, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

type ruleEnv struct {
	Record map[string]any `expr:"record"`
	Action string         `expr:"action"`
}
