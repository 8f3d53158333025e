package query

import "github.com/expr-lang/expr/vm"

type CompiledQuery struct {
	Program *vm.Program
	Text    string
}
