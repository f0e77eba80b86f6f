package scenario

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/dop251/goja"

	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

// Scenario is a named sequence of renders into one container.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Container is the container element's tag (default: "div").
	Container string `json:"container,omitempty"`

	Steps []Step `json:"steps"`
}

// Step is one render followed by checks.
type Step struct {
	Name string `json:"name,omitempty"`

	// Render is the vnode in its JSON form. Absent or null unmounts.
	Render json.RawMessage `json:"render,omitempty"`

	// Times repeats the render. Each repetition decodes a fresh vnode.
	Times int `json:"times,omitempty"`

	// Error is the code the render must fail with, e.g. "E101".
	Error string `json:"error,omitempty"`

	// Mutations, when set, is the number of DOM mutations the last
	// render of the step must cause. With Times > 1 the earlier
	// repetitions are not checked, so {"times": 2, "mutations": 0} asserts
	// that rendering the same tree again leaves the DOM alone.
	Mutations *int `json:"mutations,omitempty"`

	Expect []Expectation `json:"expect,omitempty"`
}

// Expectation is a JavaScript expression and its expected value.
type Expectation struct {
	Expr string `json:"expr"`

	// Equals is compared to the exported result after a JSON round
	// trip, so 200 and "200" differ but 200 and 200.0 do not.
	Equals json.RawMessage `json:"equals,omitempty"`

	program *goja.Program
}

// Label returns the step's name or its 1-based position.
func (s *Step) Label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return "step " + strconv.Itoa(i+1)
}

// VNode decodes the step's vnode.
func (s *Step) VNode() (*vdom.VNode, error) {
	if len(bytes.TrimSpace(s.Render)) == 0 {
		return nil, nil
	}
	return vdom.Unmarshal(s.Render)
}

func (s *Step) repeat() int {
	if s.Times < 1 {
		return 1
	}
	return s.Times
}

// Decode parses a scenario and compiles its expressions. name is used
// when the file has no name of its own.
func Decode(name string, data []byte) (*Scenario, error) {
	sc := &Scenario{}
	if err := json.Unmarshal(data, sc); err != nil {
		return nil, errors.New("E142").WithPath(name).Wrap(err)
	}
	if sc.Name == "" {
		sc.Name = name
	}
	if sc.Container == "" {
		sc.Container = "div"
	}
	if len(sc.Steps) == 0 {
		return nil, errors.New("E142").WithPath(sc.Name).WithDetail("scenario has no steps")
	}

	for i := range sc.Steps {
		step := &sc.Steps[i]
		if _, err := step.VNode(); err != nil {
			return nil, errors.New("E142").
				WithPath(sc.Name + " > " + step.Label(i)).
				Wrap(err)
		}
		for j := range step.Expect {
			exp := &step.Expect[j]
			prog, err := goja.Compile(step.Label(i), exp.Expr, true)
			if err != nil {
				return nil, errors.New("E142").
					WithPath(sc.Name+" > "+step.Label(i)).
					WithDetailf("expression %q", exp.Expr).
					Wrap(err)
			}
			exp.program = prog
		}
	}
	return sc, nil
}
