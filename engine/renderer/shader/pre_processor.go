// pre_processor.go implements the Oxy WGSL shader pre-processor. It scans shader
// source code for @oxy: annotations, replaces them with generated WGSL declarations
// or injected source, and collects a declarations list that the Scene uses to
// semantically wire GPU resources to bind groups without manual string lookups.
//
// Injected source comes from the include registry (see RegisterInclude).
package shader

import (
	"fmt"
	"strings"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// declarations accumulates annotations of type AnnotationTypeBindingGroup and
	// AnnotationTypeProvider during a Process call. Reset at the start of each Process invocation.
	declarations []Annotation

	// included tracks which includes have been emitted during the current Process call.
	included map[AnnotationArg]bool
}

// PreProcessor processes raw WGSL shader source code containing @oxy: annotations,
// replacing them with generated declarations or injected sources while collecting
// a declarations list for downstream resource wiring by the Scene.
type PreProcessor interface {
	// Process takes raw WGSL shader source code and pre-processes it by replacing
	// @oxy: annotations with their corresponding WGSL output. @oxy:include annotations
	// are replaced with registered source text, preceded by any includes it requires and
	// emitted at most once per source. @oxy:group annotations are replaced with generated
	// @group/@binding variable declarations. @oxy:provider annotations produce no WGSL
	// output but are recorded in the declarations list.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed WGSL shader source code with annotations replaced
	//   - error: an error if any annotation is malformed or references an unknown type
	Process(source string) (string, error)

	// Declarations returns the list of AnnotationTypeBindingGroup and AnnotationTypeProvider
	// annotations collected during the most recent call to Process, in source-order.
	// Returns nil if Process has not been called.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor backed by the include registry.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	p.included = make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			out, err = p.include(out, a.Args[0], nil)
			if err != nil {
				return "", fmt.Errorf("line %d: %w", i+1, err)
			}
		case AnnotationTypeBindingGroup:
			entry, _ := lookupInclude(a.Args[2])
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, addressSpaces[a.Args[0]], a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeProvider:
			p.declarations = append(p.declarations, *a)
		default:
			return "", fmt.Errorf("line %d: unknown annotation type %q", i+1, a.Type)
		}
	}
	return strings.Join(out, "\n"), nil
}

// include appends the source of arg, after its requirements, unless it was already emitted.
// chain holds the includes currently being expanded and guards against require cycles.
func (p *preProcessor) include(out []string, arg AnnotationArg, chain []AnnotationArg) ([]string, error) {
	if p.included[arg] {
		return out, nil
	}
	for _, c := range chain {
		if c == arg {
			return nil, fmt.Errorf("include cycle through %q", arg)
		}
	}
	entry, ok := lookupInclude(arg)
	if !ok {
		return nil, fmt.Errorf("unknown @oxy:include argument %q", arg)
	}
	var err error
	for _, req := range entry.Requires {
		out, err = p.include(out, req, append(chain, arg))
		if err != nil {
			return nil, err
		}
	}
	p.included[arg] = true
	return append(out, entry.Source), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
