package templates

import (
	"strings"

	qt "github.com/valyala/quicktemplate"
)

// ArityGen renders the typed EffectN helper wrappers for the deferred
// package, one per arity up to count.
func ArityGen(count int) string {
	sb := &strings.Builder{}
	qw := qt.AcquireWriter(sb)
	defer qt.ReleaseWriter(qw)
	w := qw.N()

	w.S("package deferred\n")

	for n := 1; n <= count; n++ {
		w.S("\nfunc Effect")
		w.D(n)
		w.S("[")
		w.S(prefixedStrings("T", n))
		w.S(" any](\n")
		w.S("\tsc *Scheduler,\n")
		for i := 0; i < n; i++ {
			w.S("\tget")
			w.D(i)
			w.S(" Getter[T")
			w.D(i)
			w.S("],\n")
		}
		w.S("\tfn func(")
		w.S(prefixedStrings("T", n))
		w.S(") error,\n")
		w.S(") error {\n")
		w.S("\treturn Effect(sc, func(prev struct{}) (struct{}, error) {\n")
		w.S("\t\treturn prev, fn(\n")
		for i := 0; i < n; i++ {
			w.S("\t\t\tget")
			w.D(i)
			w.S("(),\n")
		}
		w.S("\t\t)\n")
		w.S("\t}, struct{}{})\n")
		w.S("}\n")
	}

	return sb.String()
}
