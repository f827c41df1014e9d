package script

import (
	"fmt"
	"slices"

	"github.com/aretw0/markcheck/pkg/checks"
	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/registry"
	"github.com/mitchellh/mapstructure"
)

// Each args struct lists the options a check recognizes. Every other key ends
// up in Extra and is only ever used as a template value. Recognized options
// are decoded strictly: a scalar where a list is expected, or a number where a
// tag name is expected, is an argument error rather than a coerced value.

type structuralArgs struct {
	MissingMsg string         `mapstructure:"missing_msg"`
	ExpandMsg  string         `mapstructure:"expand_msg"`
	Append     *bool          `mapstructure:"append"`
	Extra      map[string]any `mapstructure:",remain"`
}

type tagArgs struct {
	Name       string         `mapstructure:"name"`
	Index      int            `mapstructure:"index"`
	MissingMsg string         `mapstructure:"missing_msg"`
	ExpandMsg  string         `mapstructure:"expand_msg"`
	Append     *bool          `mapstructure:"append"`
	Extra      map[string]any `mapstructure:",remain"`
}

type codeArgs struct {
	Text         string         `mapstructure:"text"`
	IncorrectMsg string         `mapstructure:"incorrect_msg"`
	Fixed        *bool          `mapstructure:"fixed"`
	Append       *bool          `mapstructure:"append"`
	Extra        map[string]any `mapstructure:",remain"`
}

type textArgs struct {
	IncorrectMsg string         `mapstructure:"incorrect_msg"`
	ShowText     bool           `mapstructure:"show_text"`
	Append       *bool          `mapstructure:"append"`
	Extra        map[string]any `mapstructure:",remain"`
}

type attrArgs struct {
	Attrs        []string       `mapstructure:"attrs"`
	MissingMsg   string         `mapstructure:"missing_msg"`
	IncorrectMsg string         `mapstructure:"incorrect_msg"`
	CheckValues  *bool          `mapstructure:"check_values"`
	Append       *bool          `mapstructure:"append"`
	Extra        map[string]any `mapstructure:",remain"`
}

// DefaultRegistry returns a registry holding every check of the library under
// its script name.
func DefaultRegistry() *registry.Registry {
	r := registry.NewRegistry()
	r.Register(registry.Check{Name: checks.NameCheckDoctype, Run: structural(checks.NameCheckDoctype, checks.CheckDoctype)})
	r.Register(registry.Check{Name: checks.NameCheckHTML, Run: structural(checks.NameCheckHTML, checks.CheckHTML)})
	r.Register(registry.Check{Name: checks.NameCheckHead, Run: structural(checks.NameCheckHead, checks.CheckHead)})
	r.Register(registry.Check{Name: checks.NameCheckBody, Run: structural(checks.NameCheckBody, checks.CheckBody)})
	r.Register(registry.Check{Name: checks.NameCheckTag, Positional: "name", Run: checkTag})
	r.Register(registry.Check{Name: checks.NameHasCode, Positional: "text", Run: hasCode})
	r.Register(registry.Check{Name: checks.NameHasEqualText, Run: hasEqualText})
	r.Register(registry.Check{Name: checks.NameHasEqualAttr, Run: hasEqualAttr})
	return r
}

func structural(name string, check func(*domain.State, ...checks.Option) (*domain.State, error)) registry.StepFunction {
	return func(s *domain.State, args map[string]any) (*domain.State, error) {
		var a structuralArgs
		if err := decode(name, args, &a); err != nil {
			return nil, err
		}
		opts := messageOpts(a.MissingMsg, a.ExpandMsg, "", a.Append, a.Extra)
		return check(s, opts...)
	}
}

func checkTag(s *domain.State, args map[string]any) (*domain.State, error) {
	var a tagArgs
	if err := decode(checks.NameCheckTag, args, &a); err != nil {
		return nil, err
	}
	opts := messageOpts(a.MissingMsg, a.ExpandMsg, "", a.Append, a.Extra)
	opts = append(opts, checks.WithIndex(a.Index))
	return checks.CheckTag(s, a.Name, opts...)
}

func hasCode(s *domain.State, args map[string]any) (*domain.State, error) {
	var a codeArgs
	if err := decode(checks.NameHasCode, args, &a); err != nil {
		return nil, err
	}
	opts := messageOpts("", "", a.IncorrectMsg, a.Append, a.Extra)
	if a.Fixed != nil {
		opts = append(opts, checks.WithFixed(*a.Fixed))
	}
	return checks.HasCode(s, a.Text, opts...)
}

func hasEqualText(s *domain.State, args map[string]any) (*domain.State, error) {
	var a textArgs
	if err := decode(checks.NameHasEqualText, args, &a); err != nil {
		return nil, err
	}
	opts := messageOpts("", "", a.IncorrectMsg, a.Append, a.Extra)
	opts = append(opts, checks.WithShowText(a.ShowText))
	return checks.HasEqualText(s, opts...)
}

func hasEqualAttr(s *domain.State, args map[string]any) (*domain.State, error) {
	var a attrArgs
	if err := decode(checks.NameHasEqualAttr, args, &a); err != nil {
		return nil, err
	}
	opts := messageOpts(a.MissingMsg, "", a.IncorrectMsg, a.Append, a.Extra)
	if a.CheckValues != nil {
		opts = append(opts, checks.WithCheckValues(*a.CheckValues))
	}
	if v, ok := args["attrs"]; ok && v != nil {
		opts = append(opts, checks.WithAttrs(a.Attrs...))
	}
	return checks.HasEqualAttr(s, opts...)
}

func decode(check string, args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: out,
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(args); err != nil {
		return &domain.ArgumentError{Check: check, Arg: "args", Reason: err.Error()}
	}
	return nil
}

func messageOpts(missing, expand, incorrect string, appendCtx *bool, extra map[string]any) []checks.Option {
	var opts []checks.Option
	if missing != "" {
		opts = append(opts, checks.WithMissingMsg(missing))
	}
	if expand != "" {
		opts = append(opts, checks.WithExpandMsg(expand))
	}
	if incorrect != "" {
		opts = append(opts, checks.WithIncorrectMsg(incorrect))
	}
	if appendCtx != nil {
		opts = append(opts, checks.WithAppend(*appendCtx))
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		opts = append(opts, checks.WithValue(k, extra[k]))
	}
	return opts
}

// bind merges the positional scalar of a step into its keyword arguments.
func bind(step Step, c registry.Check) (map[string]any, error) {
	args := make(map[string]any, len(step.Args)+1)
	for k, v := range step.Args {
		args[k] = v
	}
	if step.Arg == nil {
		return args, nil
	}
	if c.Positional == "" {
		return nil, &domain.ArgumentError{Check: c.Name, Arg: fmt.Sprint(step.Arg), Reason: "check takes no positional argument"}
	}
	if _, dup := args[c.Positional]; dup {
		return nil, &domain.ArgumentError{Check: c.Name, Arg: c.Positional, Reason: "given twice"}
	}
	args[c.Positional] = step.Arg
	return args, nil
}
