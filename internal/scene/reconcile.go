package scene

// Join reports what a reconciliation did.
type Join struct {
	Enter  int
	Update int
	Exit   int
}

// Reconcile brings the children of parent in line with keys.
//
// Keys without a child are created with enter. Every keyed child, new or
// old, is then passed to update so it carries a full, current attribute set.
// Children whose key is not listed are removed. Afterwards the children
// follow the order of keys.
func Reconcile(parent *Node, keys []string, enter func(key string) *Node, update func(n *Node, key string)) Join {
	return reconcile(parent, "", keys, enter, update)
}

// ReconcileClass is Reconcile restricted to the children of parent that
// carry class. Other children are kept and placed after the keyed ones.
// Entered nodes are given class.
func ReconcileClass(parent *Node, class string, keys []string, enter func(key string) *Node, update func(n *Node, key string)) Join {
	return reconcile(parent, class, keys, enter, update)
}

func reconcile(parent *Node, class string, keys []string, enter func(key string) *Node, update func(n *Node, key string)) Join {
	var j Join

	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}

	for _, c := range parent.Children() {
		if class != "" && c.Class != class {
			continue
		}
		if !want[c.Key] {
			parent.Remove(c.Key)
			j.Exit++
		}
	}

	for _, k := range keys {
		n, ok := parent.Child(k)
		if !ok {
			n = enter(k)
			n.Key = k
			if class != "" {
				n.Class = class
			}
			if err := parent.Append(n); err != nil {
				continue
			}
			j.Enter++
		} else {
			j.Update++
		}
		update(n, k)
	}

	parent.reorder(keys)
	return j
}
