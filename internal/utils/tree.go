package utils

import (
	"sort"
	"strings"
)

// PathsToTree converts a list of slash-separated directory paths into a
// rooted visual tree string:
//
//	.
//	├── docs
//	└── src
//	    └── app
func PathsToTree(paths []string) string {
	root := make(map[string]any)
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		current := root
		for _, part := range strings.Split(p, "/") {
			if part == "" || part == "." {
				continue
			}
			if _, ok := current[part]; !ok {
				current[part] = make(map[string]any)
			}
			current = current[part].(map[string]any)
		}
	}

	var sb strings.Builder
	sb.WriteString(".\n")
	renderTree(&sb, root, "")
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func renderTree(sb *strings.Builder, node map[string]any, prefix string) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		isLast := i == len(keys)-1
		sb.WriteString(prefix)
		if isLast {
			sb.WriteString("└── ")
		} else {
			sb.WriteString("├── ")
		}
		sb.WriteString(k)
		sb.WriteString("\n")

		children := node[k].(map[string]any)
		if len(children) > 0 {
			newPrefix := prefix + "│   "
			if isLast {
				newPrefix = prefix + "    "
			}
			renderTree(sb, children, newPrefix)
		}
	}
}
