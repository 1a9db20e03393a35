package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-benchtmpl/pkg/params"
	"github.com/goliatone/go-benchtmpl/pkg/template"
)

// Fill prompts for every requirement of t that b does not bind and returns
// the answers as a set. Callers chain it after b. Sequences are entered one
// item per line; conditions are yes/no and bind "true" or "".
func Fill(ctx context.Context, d Driver, t *template.Template, b params.Binder) (params.Set, error) {
	if d == nil || t == nil {
		return params.Set{}, errors.New("prompt: driver and template are required")
	}

	values := make(map[string]params.Value)
	for _, req := range t.Requirements() {
		if _, done := values[req.Name]; done {
			continue
		}
		if b != nil {
			if v, ok := b.Lookup(req.Name); ok && v.Valid() {
				continue
			}
		}

		v, err := ask(ctx, d, t.Name(), req)
		if err != nil {
			return params.Set{}, fmt.Errorf("prompt: %s: %w", req.Name, err)
		}
		values[req.Name] = v
	}
	return params.FromValues(values), nil
}

func ask(ctx context.Context, d Driver, tmpl string, req template.Requirement) (params.Value, error) {
	help := fmt.Sprintf("%s, line %d", tmpl, req.Line)

	switch req.Usage {
	case template.UsageSequence:
		text, err := d.TextArea(ctx, TextAreaConfig{
			Message: fmt.Sprintf("%s (one item per line)", req.Name),
			Help:    help,
		})
		if err != nil {
			return params.Value{}, err
		}
		var items []string
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				items = append(items, line)
			}
		}
		return params.Sequence(items...), nil

	case template.UsageCondition:
		yes, err := d.Confirm(ctx, ConfirmConfig{Message: req.Name, Help: help})
		if err != nil {
			return params.Value{}, err
		}
		if yes {
			return params.Scalar("true"), nil
		}
		return params.Scalar(""), nil

	default:
		text, err := d.Input(ctx, InputConfig{
			Message:   req.Name,
			Help:      help,
			Validator: nonEmpty,
		})
		if err != nil {
			return params.Value{}, err
		}
		return params.Scalar(text), nil
	}
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}
