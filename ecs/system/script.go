package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/podescape/ecs/component"
	"github.com/milk9111/podescape/prefabs"
)

const reactionDispatchScript = `
__result := react(__kind, __character)
`

// ReactionScript runs a tengo script defining
//
//	react(kind, character) => {sound, pitch, delay, text} | undefined
//
// for bed and door interactions.
type ReactionScript struct {
	name     string
	compiled *tengo.Compiled
}

// LoadReactionScript compiles a script from the prefabs directory.
func LoadReactionScript(name string) (*ReactionScript, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return NewReactionScript(name, src)
}

func NewReactionScript(name string, src []byte) (*ReactionScript, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte(reactionDispatchScript)...))
	_ = script.Add("__kind", "")
	_ = script.Add("__character", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &ReactionScript{name: name, compiled: compiled}, nil
}

func (r *ReactionScript) React(kind component.TriggerKind, character int) (Reaction, bool, error) {
	if err := r.compiled.Set("__kind", kind.String()); err != nil {
		return Reaction{}, false, err
	}
	if err := r.compiled.Set("__character", character); err != nil {
		return Reaction{}, false, err
	}
	if err := r.compiled.Run(); err != nil {
		return Reaction{}, false, fmt.Errorf("script: run %s: %w", r.name, err)
	}

	result := r.compiled.Get("__result")
	if result.IsUndefined() {
		return Reaction{}, false, nil
	}
	m := result.Map()
	if m == nil {
		return Reaction{}, false, fmt.Errorf("script: %s: react returned %s, want a map", r.name, result.ValueType())
	}

	out := Reaction{Pitch: 1}
	if v, ok := m["sound"].(string); ok {
		out.Sound = v
	}
	if v, ok := m["text"].(string); ok {
		out.Text = v
	}
	if v, ok := number(m["pitch"]); ok {
		out.Pitch = v
	}
	if v, ok := number(m["delay"]); ok {
		out.Delay = v
	}
	return out, true, nil
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
