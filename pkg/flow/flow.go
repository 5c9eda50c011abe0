package flow

// =============================================================================
// Node Kinds - Single Source of Truth
// =============================================================================

// Kind discriminates the control-flow node variants.
// The values double as the JSON `type` discriminant on the wire.
type Kind string

// Control-flow node kinds.
const (
	KindSequence Kind = "sequence" // ordered children, executed top to bottom
	KindBlock    Kind = "block"    // named function/procedure body
	KindIf       Kind = "if"       // conditional with then and optional else
	KindLoop     Kind = "loop"     // pre-test loop with condition and body
	KindCommand  Kind = "command"  // atomic statement
	KindError    Kind = "error"    // parse-failure placeholder, never has children
)

// ValidKinds is the set of recognized node kinds.
var ValidKinds = map[Kind]bool{
	KindSequence: true,
	KindBlock:    true,
	KindIf:       true,
	KindLoop:     true,
	KindCommand:  true,
	KindError:    true,
}

// =============================================================================
// Node - Control-Flow Tree
// =============================================================================

// Node is one node of a control-flow tree.
//
// Which fields are meaningful depends on Kind:
//
//	sequence: Children
//	block:    Label, Children
//	if:       Condition, Then, Else (Else may be nil)
//	loop:     Condition, Body
//	command:  Label
//	error:    Message
//
// Trees are finite and acyclic by construction; nothing in this core
// validates that.
type Node struct {
	Kind Kind

	Label     string // block, command
	Condition string // if, loop
	Message   string // error

	Children []*Node // sequence, block
	Then     *Node   // if
	Else     *Node   // if (optional)
	Body     *Node   // loop
}

// Sequence builds a sequence node from the given children.
func Sequence(children ...*Node) *Node {
	return &Node{Kind: KindSequence, Children: children}
}

// Block builds a named block node wrapping the given children.
func Block(label string, children ...*Node) *Node {
	return &Node{Kind: KindBlock, Label: label, Children: children}
}

// If builds a conditional node. elseBranch may be nil.
func If(condition string, thenBranch, elseBranch *Node) *Node {
	return &Node{Kind: KindIf, Condition: condition, Then: thenBranch, Else: elseBranch}
}

// Loop builds a pre-test loop node.
func Loop(condition string, body *Node) *Node {
	return &Node{Kind: KindLoop, Condition: condition, Body: body}
}

// Command builds an atomic statement node.
func Command(label string) *Node {
	return &Node{Kind: KindCommand, Label: label}
}

// ErrorNode builds a parse-failure placeholder node.
func ErrorNode(message string) *Node {
	return &Node{Kind: KindError, Message: message}
}

// =============================================================================
// Traversal
// =============================================================================

// Kids returns the node's children in rendering order: sequence/block
// children as given, then-branch before else-branch, loop body.
// Nil slots are skipped. Leaves return nil.
func (n *Node) Kids() []*Node {
	switch n.Kind {
	case KindSequence, KindBlock:
		return n.Children
	case KindIf:
		kids := make([]*Node, 0, 2)
		if n.Then != nil {
			kids = append(kids, n.Then)
		}
		if n.Else != nil {
			kids = append(kids, n.Else)
		}
		return kids
	case KindLoop:
		if n.Body != nil {
			return []*Node{n.Body}
		}
	}
	return nil
}

// Walk visits n and every descendant in depth-first pre-order.
// If fn returns false the subtree below the current node is skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Kids() {
		Walk(c, fn)
	}
}

// Count returns the total number of nodes in the tree rooted at n.
func Count(n *Node) int {
	total := 0
	Walk(n, func(*Node) bool {
		total++
		return true
	})
	return total
}

// Equal reports whether two trees are structurally identical, field by
// field. Two nils are equal.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Label != b.Label ||
		a.Condition != b.Condition || a.Message != b.Message {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return Equal(a.Then, b.Then) && Equal(a.Else, b.Else) && Equal(a.Body, b.Body)
}
