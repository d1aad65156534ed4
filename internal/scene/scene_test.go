package scene_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/barmotion/internal/scene"
)

var _ = Describe("Node", func() {
	var root *scene.Node

	BeforeEach(func() {
		root = scene.NewGroup("svg")
	})

	Describe("Append", func() {
		It("rejects duplicate sibling keys", func() {
			Expect(root.Append(scene.NewRect("a"))).To(Succeed())
			Expect(root.Append(scene.NewRect("a"))).To(MatchError(scene.ErrDuplicateKey))
			Expect(root.Len()).To(Equal(1))
		})

		It("refuses children on leaf nodes", func() {
			leaf := scene.NewRect("leaf")
			Expect(leaf.Append(scene.NewRect("x"))).To(MatchError(scene.ErrNotContainer))
		})

		It("moves a node that already has a parent", func() {
			a := scene.NewGroup("a")
			b := scene.NewGroup("b")
			Expect(root.Append(a)).To(Succeed())
			Expect(root.Append(b)).To(Succeed())

			r := scene.NewRect("r")
			Expect(a.Append(r)).To(Succeed())
			Expect(b.Append(r)).To(Succeed())

			Expect(a.Len()).To(Equal(0))
			Expect(r.Parent()).To(BeIdenticalTo(b))
		})
	})

	Describe("Ensure", func() {
		It("creates a child exactly once", func() {
			calls := 0
			create := func() *scene.Node {
				calls++
				return scene.NewGroup("ignored").WithClass("x-axis")
			}

			first := root.Ensure("x-axis", create)
			second := root.Ensure("x-axis", create)

			Expect(calls).To(Equal(1))
			Expect(second).To(BeIdenticalTo(first))
			Expect(first.Key).To(Equal("x-axis"))
			Expect(root.FindAll("x-axis")).To(HaveLen(1))
		})
	})

	Describe("Find", func() {
		It("searches the whole subtree", func() {
			g := root.Ensure("outer", func() *scene.Node { return scene.NewGroup("") })
			g.Ensure("inner", func() *scene.Node { return scene.NewText("", "hi").WithClass("label") })

			Expect(root.Find("label")).NotTo(BeNil())
			Expect(root.Find("label").Text).To(Equal("hi"))
			Expect(root.Find("missing")).To(BeNil())
			Expect(root.Count(scene.KindText)).To(Equal(1))
			Expect(root.Count(scene.KindGroup)).To(Equal(2))
		})
	})

	Describe("attributes", func() {
		It("lists names in a stable order", func() {
			n := scene.NewRect("r").Set("stroke", "black").Set("fill", "red").SetFloat("opacity", 0.5)
			Expect(n.AttrNames()).To(Equal([]string{"fill", "opacity", "stroke"}))
			v, ok := n.Attr("opacity")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("0.5"))

			n.Unset("stroke")
			_, ok = n.Attr("stroke")
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("Reconcile", func() {
	var (
		parent  *scene.Node
		entered []string
		updated map[string]int
	)

	enter := func(key string) *scene.Node {
		entered = append(entered, key)
		return scene.NewRect(key)
	}
	update := func(n *scene.Node, key string) {
		updated[key]++
		n.Width = float64(len(key))
	}

	keysOf := func(n *scene.Node) []string {
		var keys []string
		for _, c := range n.Children() {
			keys = append(keys, c.Key)
		}
		return keys
	}

	BeforeEach(func() {
		parent = scene.NewGroup("bars")
		entered = nil
		updated = map[string]int{}
	})

	It("enters every key on first use", func() {
		j := scene.Reconcile(parent, []string{"a", "b", "c"}, enter, update)
		Expect(j).To(Equal(scene.Join{Enter: 3}))
		Expect(entered).To(Equal([]string{"a", "b", "c"}))
		Expect(updated).To(HaveLen(3))
	})

	It("updates existing keys without recreating them", func() {
		scene.Reconcile(parent, []string{"a", "b"}, enter, update)
		first, _ := parent.Child("a")

		j := scene.Reconcile(parent, []string{"a", "b"}, enter, update)
		Expect(j).To(Equal(scene.Join{Update: 2}))
		again, _ := parent.Child("a")
		Expect(again).To(BeIdenticalTo(first))
		Expect(updated["a"]).To(Equal(2))
	})

	It("removes departed keys and enters new ones", func() {
		scene.Reconcile(parent, []string{"a", "b", "c"}, enter, update)
		j := scene.Reconcile(parent, []string{"c", "d"}, enter, update)

		Expect(j).To(Equal(scene.Join{Enter: 1, Update: 1, Exit: 2}))
		Expect(keysOf(parent)).To(Equal([]string{"c", "d"}))
	})

	It("follows the order of the key list", func() {
		scene.Reconcile(parent, []string{"a", "b", "c"}, enter, update)
		scene.Reconcile(parent, []string{"c", "a", "b"}, enter, update)
		Expect(keysOf(parent)).To(Equal([]string{"c", "a", "b"}))
	})

	It("empties the parent for an empty key list", func() {
		scene.Reconcile(parent, []string{"a"}, enter, update)
		j := scene.Reconcile(parent, nil, enter, update)
		Expect(j.Exit).To(Equal(1))
		Expect(parent.Len()).To(BeZero())
	})

	It("leaves children of other classes alone when restricted to a class", func() {
		Expect(parent.Append(scene.NewLine("domain").WithClass("domain"))).To(Succeed())

		j := scene.ReconcileClass(parent, "tick", []string{"a", "b"}, enter, update)
		Expect(j).To(Equal(scene.Join{Enter: 2}))
		Expect(parent.FindAll("tick")).To(HaveLen(2))

		j = scene.ReconcileClass(parent, "tick", []string{"b"}, enter, update)
		Expect(j).To(Equal(scene.Join{Update: 1, Exit: 1}))
		Expect(keysOf(parent)).To(Equal([]string{"b", "domain"}))
	})
})

var _ = Describe("Surface", func() {
	It("starts detached", func() {
		s := scene.NewSurface()
		Expect(s.Attached()).To(BeFalse())

		s.Attach(1280, 720)
		Expect(s.Attached()).To(BeTrue())
		Expect(s.Width).To(Equal(1280.0))

		s.Detach()
		Expect(s.Attached()).To(BeFalse())
	})

	It("treats a nil surface as detached", func() {
		var s *scene.Surface
		Expect(s.Attached()).To(BeFalse())
	})
})
