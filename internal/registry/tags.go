package registry

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/protocatalog/internal/prototype"
)

const tagName = "proto"

type tagOptions struct {
	name       string
	required   bool
	single     bool
	hasDefault bool
	defaultLit string
	oneOf      []string
	ref        prototype.Kind
}

func parseTag(tag string) (tagOptions, error) {
	parts := strings.Split(tag, ",")
	opts := tagOptions{name: strings.TrimSpace(parts[0])}
	if opts.name == "" {
		return opts, fmt.Errorf("tag %q has no field name", tag)
	}

	for _, part := range parts[1:] {
		key, val, hasVal := strings.Cut(part, "=")
		switch key {
		case "required":
			opts.required = true
		case "single":
			opts.single = true
		case "default":
			opts.hasDefault = true
			opts.defaultLit = val
		case "oneof":
			if !hasVal || val == "" {
				return opts, fmt.Errorf("tag %q: oneof needs at least one variant", tag)
			}
			opts.oneOf = strings.Split(val, "|")
		case "ref":
			if !hasVal || val == "" {
				return opts, fmt.Errorf("tag %q: ref needs a kind", tag)
			}
			opts.ref = prototype.Kind(val)
		default:
			return opts, fmt.Errorf("tag %q: unknown option %q", tag, key)
		}
	}

	if opts.required && opts.hasDefault {
		return opts, fmt.Errorf("tag %q: a required field cannot have a default", tag)
	}
	return opts, nil
}
