// Package huffman generates prefix-free hint labels over an alphabet.
//
// Labels are the leaf paths of a k-ary Huffman tree built over n equally weighted
// leaves, where k is the alphabet size. A first merge of a smaller arity keeps the
// tree full, so no label is wasted on a half-empty internal node.
package huffman

import (
	"errors"
	"sort"
	"strings"

	"github.com/jsfr/zellij-fingers/pkg/pqueue"
)

var (
	// ErrEmptyAlphabet is returned when hints are requested from no symbols.
	ErrEmptyAlphabet = errors.New("hint alphabet is empty")
	// ErrAlphabetTooSmall is returned when more than one hint is requested from a
	// single symbol, which cannot form a prefix-free set.
	ErrAlphabetTooSmall = errors.New("hint alphabet needs at least two symbols")
)

type node struct {
	weight   int
	children []int
}

// Generate returns n distinct prefix-free hints drawn from alphabet, sorted by
// length ascending. When n fits the alphabet the first n symbols are returned.
func Generate(alphabet []string, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	if len(alphabet) == 0 {
		return nil, ErrEmptyAlphabet
	}
	if n <= len(alphabet) {
		hints := make([]string, n)
		copy(hints, alphabet[:n])
		return hints, nil
	}
	if len(alphabet) == 1 {
		return nil, ErrAlphabetTooSmall
	}

	arity := len(alphabet)
	nodes := make([]node, 0, 2*n)
	queue := pqueue.New[int]()

	// Strictly decreasing weights make equal-weight ties reproducible.
	for i := 0; i < n; i++ {
		nodes = append(nodes, node{weight: -i})
		queue.Push(-i, i)
	}

	merge := func(count int) {
		var parent node
		for j := 0; j < count; j++ {
			idx, ok := queue.Pop()
			if !ok {
				break
			}
			parent.weight += nodes[idx].weight
			parent.children = append(parent.children, idx)
		}
		nodes = append(nodes, parent)
		queue.Push(parent.weight, len(nodes)-1)
	}

	merge(InitialBranches(n, arity))
	for queue.Len() > 1 {
		merge(arity)
	}
	root, _ := queue.Pop()

	return labels(nodes, root, alphabet), nil
}

// InitialBranches returns the arity of the first merge so that every later merge
// of arity nodes leaves exactly one root.
func InitialBranches(n, arity int) int {
	result := arity
	for t := 1; t <= n/arity+1; t++ {
		result = n - t*(arity-1)
		if result >= 2 && result <= arity {
			break
		}
		result = arity
	}
	return result
}

type frame struct {
	idx  int
	path []int
}

// labels walks the tree pre-order, child position i mapping to alphabet[i].
func labels(nodes []node, root int, alphabet []string) []string {
	type leaf struct {
		label string
		depth int
	}
	var leaves []leaf

	stack := []frame{{idx: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := nodes[top.idx].children
		if len(children) == 0 {
			var sb strings.Builder
			for _, i := range top.path {
				sb.WriteString(alphabet[i])
			}
			leaves = append(leaves, leaf{label: sb.String(), depth: len(top.path)})
			continue
		}
		for i := len(children) - 1; i >= 0; i-- {
			path := make([]int, len(top.path)+1)
			copy(path, top.path)
			path[len(top.path)] = i
			stack = append(stack, frame{idx: children[i], path: path})
		}
	}

	sort.SliceStable(leaves, func(i, j int) bool {
		return leaves[i].depth < leaves[j].depth
	})

	hints := make([]string, len(leaves))
	for i, l := range leaves {
		hints[i] = l.label
	}
	return hints
}
