package mython

import "testing"

func Test_Equal_NotEqual_AreComplementary(t *testing.T) {
	ctx := NewContext(nil)
	pairs := [][2]ObjectHandle{
		{NewHandle(Number(3)), NewHandle(Number(3))},
		{NewHandle(Number(3)), NewHandle(Number(4))},
		{NewHandle(String("a")), NewHandle(String("a"))},
		{NewHandle(String("a")), NewHandle(String("b"))},
	}
	for _, p := range pairs {
		eq, err := Equal(p[0], p[1], ctx)
		if err != nil {
			t.Fatalf("Equal: %v", err)
		}
		neq, err := NotEqual(p[0], p[1], ctx)
		if err != nil {
			t.Fatalf("NotEqual: %v", err)
		}
		if eq == neq {
			t.Fatalf("Equal(%v,%v)=%v and NotEqual=%v should differ", p[0], p[1], eq, neq)
		}
	}
}

func Test_Less_Equal_Greater_AreExclusive(t *testing.T) {
	ctx := NewContext(nil)
	nums := []Number{1, 2, 3}
	for _, a := range nums {
		for _, b := range nums {
			l, err := Less(NewHandle(a), NewHandle(b), ctx)
			if err != nil {
				t.Fatalf("Less: %v", err)
			}
			e, err := Equal(NewHandle(a), NewHandle(b), ctx)
			if err != nil {
				t.Fatalf("Equal: %v", err)
			}
			g, err := Greater(NewHandle(a), NewHandle(b), ctx)
			if err != nil {
				t.Fatalf("Greater: %v", err)
			}
			count := 0
			for _, v := range []bool{l, e, g} {
				if v {
					count++
				}
			}
			if count != 1 {
				t.Fatalf("Less/Equal/Greater(%d,%d) = %v/%v/%v, want exactly one true", a, b, l, e, g)
			}
		}
	}
}

func Test_UserEq_DispatchesToInstance(t *testing.T) {
	// class P:
	//   def __init__(self, x): self.x = x
	//   def __eq__(self, o): return self.x == o.x
	cls := NewClass("P", nil, nil)
	cls.Methods = []*Method{
		{
			Name:         "__init__",
			FormalParams: []string{"x"},
			Body: MethodBody{Body: FieldAssignment{
				Target: VariableValue{DottedIDs: []string{"self"}},
				Field:  "x",
				Expr:   VariableValue{DottedIDs: []string{"x"}},
			}},
		},
		{
			Name:         "__eq__",
			FormalParams: []string{"o"},
			Body: MethodBody{Body: Return{Expr: Comparison{
				Cmp: Equal,
				L:   VariableValue{DottedIDs: []string{"self", "x"}},
				R:   VariableValue{DottedIDs: []string{"o", "x"}},
			}}},
		},
	}

	ctx := NewContext(nil)
	p3a := NewInstance(cls)
	if _, err := p3a.Call("__init__", []ObjectHandle{NewHandle(Number(3))}, ctx); err != nil {
		t.Fatalf("__init__: %v", err)
	}
	p3b := NewInstance(cls)
	if _, err := p3b.Call("__init__", []ObjectHandle{NewHandle(Number(3))}, ctx); err != nil {
		t.Fatalf("__init__: %v", err)
	}

	eq, err := Equal(Share(p3a), Share(p3b), ctx)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !eq {
		t.Error("expected P(3) == P(3) via __eq__")
	}
}
