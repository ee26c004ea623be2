package mython

import "testing"

func parseSrc(t *testing.T, src string) (Node, error) {
	t.Helper()
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	return NewParser(tokens).ParseProgram()
}

func Test_Parser_ReturnOutsideFunction_IsParseError(t *testing.T) {
	_, err := parseSrc(t, "return 1\n")
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func Test_Parser_ReturnInsideTopLevelDef_IsAllowed(t *testing.T) {
	_, err := parseSrc(t, "def f():\n  return 1\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func Test_Parser_ReturnInsideMethod_IsAllowed(t *testing.T) {
	src := `class A:
  def f(self):
    return 1
`
	if _, err := parseSrc(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func Test_Parser_ReturnAfterFunctionBody_IsParseError(t *testing.T) {
	// 'return' on its own at top level, even after a def has already
	// closed, must still be rejected: the enclosing stack must be popped
	// back to empty once the def's suite finishes.
	src := `def f():
  return 1
return 2
`
	_, err := parseSrc(t, src)
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func Test_Parser_UnknownCallable_IsParseError(t *testing.T) {
	_, err := parseSrc(t, "x = foo()\n")
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func Test_Parser_ClassMustPrecedeInstantiation(t *testing.T) {
	src := `a = A()
class A:
  def f(self):
    return 1
`
	_, err := parseSrc(t, src)
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}
