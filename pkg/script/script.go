package script

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a parsed check script: an ordered list of chains, each an ordered
// list of steps. Every chain starts from the same root state.
type Script struct {
	Chains []Chain
}

// Chain is one sequence of steps.
type Chain []Step

// Step is one check invocation.
type Step struct {
	Check string
	// Arg is the scalar given as `check: value`, bound to the check's
	// positional parameter at run time.
	Arg any
	// Args holds the keyword arguments given as `check: {key: value}`.
	Args map[string]any
	// Line is the 1-based source line of the step, 0 when built in code.
	Line int
}

// ScriptError reports a malformed script or a step that cannot be resolved.
// It is an authoring error.
type ScriptError struct {
	Line  int
	Chain int
	Step  int
	Err   error
}

func (e *ScriptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("script: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("script: chain %d step %d: %v", e.Chain+1, e.Step+1, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML (or JSON) script.
//
// The document is either a list of chains or a mapping with a "chains" key. A
// flat list of steps is a single chain:
//
//	chains:
//	- - check_body
//	  - check_tag: div
//	  - has_equal_attr: {attrs: [class]}
//	- - has_code: {text: '\d{3}', fixed: false}
//
// An empty document is a script without chains.
func Parse(data []byte) (*Script, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ScriptError{Err: err}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Script{}, nil
	}
	return parseRoot(doc.Content[0])
}

// UnmarshalYAML lets a script be embedded in other YAML documents.
func (s *Script) UnmarshalYAML(n *yaml.Node) error {
	parsed, err := parseRoot(n)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

func parseRoot(root *yaml.Node) (*Script, error) {
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &Script{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind == yaml.MappingNode {
		chains := mappingValue(root, "chains")
		if chains == nil || len(root.Content) != 2 {
			return nil, &ScriptError{Line: root.Line, Err: fmt.Errorf("expected a single %q key", "chains")}
		}
		root = chains
	}
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return &Script{}, nil
	}
	if root.Kind != yaml.SequenceNode {
		return nil, &ScriptError{Line: root.Line, Err: fmt.Errorf("expected a list of chains")}
	}

	nested := 0
	for _, item := range root.Content {
		if item.Kind == yaml.SequenceNode {
			nested++
		}
	}

	s := &Script{}
	switch nested {
	case 0:
		chain, err := parseChain(root, 0)
		if err != nil {
			return nil, err
		}
		if len(chain) > 0 {
			s.Chains = append(s.Chains, chain)
		}
	case len(root.Content):
		for i, item := range root.Content {
			chain, err := parseChain(item, i)
			if err != nil {
				return nil, err
			}
			s.Chains = append(s.Chains, chain)
		}
	default:
		return nil, &ScriptError{Line: root.Line, Err: fmt.Errorf("cannot mix chains and steps at the top level")}
	}
	return s, nil
}

func parseChain(n *yaml.Node, index int) (Chain, error) {
	chain := make(Chain, 0, len(n.Content))
	for i, item := range n.Content {
		step, err := parseStep(item)
		if err != nil {
			return nil, &ScriptError{Line: item.Line, Chain: index, Step: i, Err: err}
		}
		chain = append(chain, step)
	}
	return chain, nil
}

func parseStep(n *yaml.Node) (Step, error) {
	step := Step{Line: n.Line}
	switch n.Kind {
	case yaml.ScalarNode:
		step.Check = n.Value
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return step, fmt.Errorf("a step must name exactly one check")
		}
		step.Check = n.Content[0].Value
		value := n.Content[1]
		switch {
		case value.Kind == yaml.ScalarNode && value.Tag == "!!null":
		case value.Kind == yaml.MappingNode:
			if err := value.Decode(&step.Args); err != nil {
				return step, fmt.Errorf("check %s: %w", step.Check, err)
			}
		default:
			if err := value.Decode(&step.Arg); err != nil {
				return step, fmt.Errorf("check %s: %w", step.Check, err)
			}
		}
	default:
		return step, fmt.Errorf("a step must be a check name or a single-key mapping")
	}
	if step.Check == "" {
		return step, fmt.Errorf("empty check name")
	}
	return step, nil
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// MarshalYAML renders a step back in its short form.
func (s Step) MarshalYAML() (any, error) {
	switch {
	case s.Args != nil:
		return map[string]any{s.Check: s.Args}, nil
	case s.Arg != nil:
		return map[string]any{s.Check: s.Arg}, nil
	default:
		return s.Check, nil
	}
}

// Fingerprint returns a stable digest of the script's content. Formatting and
// comments of the source do not affect it.
func (s *Script) Fingerprint() (string, error) {
	chains := s.Chains
	if chains == nil {
		chains = []Chain{}
	}
	data, err := yaml.Marshal(chains)
	if err != nil {
		return "", fmt.Errorf("failed to marshal script: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
