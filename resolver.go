// resolver.go: Command-tree resolution for Blic
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

// resolution is the outcome of walking tokens against the command tree.
type resolution struct {
	path         []string // matched command names, most general first
	node         *Command // last matched node, nil when nothing matched
	firstUnknown string   // first top-level Argument that matched nothing
	remaining    []Token  // tokens minus the consumed command segments
}

// resolveCommand walks the token stream against the command tree. While no
// segment has matched, flag tokens are skipped (they are global leftovers)
// and each Argument token is looked up in the top-level map; the first miss
// is recorded but the token itself is preserved, since it may be a
// positional for a default command. Once a segment matches, descent
// continues only while subsequent tokens are Arguments matching a child;
// the first non-matching token stops it for good. Resolution never
// backtracks.
func resolveCommand(tokens []Token, root *commandSet) resolution {
	res := resolution{}
	active := root
	stopped := false

	for _, tok := range tokens {
		if stopped {
			res.remaining = append(res.remaining, tok)
			continue
		}

		if tok.Kind != TokenArgument {
			if res.node != nil {
				stopped = true
			}
			res.remaining = append(res.remaining, tok)
			continue
		}

		child, ok := active.lookup(tok.Value)
		if !ok {
			if res.node == nil && res.firstUnknown == "" {
				res.firstUnknown = tok.Value
			}
			stopped = true
			res.remaining = append(res.remaining, tok)
			continue
		}

		res.path = append(res.path, child.name)
		res.node = child
		active = child.children
	}

	return res
}

// ancestorChain resolves every node along a matched path, root-most first.
// The path always comes from resolveCommand, so a miss is a bug.
func ancestorChain(path []string, root *commandSet) []*Command {
	chain := make([]*Command, 0, len(path))
	active := root
	for _, name := range path {
		node, ok := active.lookup(name)
		if !ok {
			break
		}
		chain = append(chain, node)
		active = node.children
	}
	return chain
}
