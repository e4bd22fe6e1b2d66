package ua

import "testing"

func TestQualifiedNameString(t *testing.T) {
	cases := map[string]struct {
		name   QualifiedName
		expect string
	}{
		"namespace zero": {
			name:   NewQualifiedName(0, "Objects"),
			expect: "Objects",
		},
		"namespaced": {
			name:   NewQualifiedName(2, "Motor"),
			expect: "2:Motor",
		},
		"name with colon": {
			name:   NewQualifiedName(1, "a:b"),
			expect: "1:a:b",
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if e, a := c.expect, c.name.String(); e != a {
				t.Errorf("expect %v, got %v", e, a)
			}
		})
	}
}

func TestParseQualifiedName(t *testing.T) {
	cases := map[string]struct {
		input  string
		expect QualifiedName
		err    bool
	}{
		"bare": {
			input:  "Objects",
			expect: NewQualifiedName(0, "Objects"),
		},
		"prefixed": {
			input:  "2:Motor",
			expect: NewQualifiedName(2, "Motor"),
		},
		"second colon kept": {
			input:  "1:a:b",
			expect: NewQualifiedName(1, "a:b"),
		},
		"bad index": {
			input: "x:Motor",
			err:   true,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			q, err := ParseQualifiedName(c.input)
			if c.err {
				if err == nil {
					t.Fatalf("expect error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("expect no error, got %v", err)
			}
			if e, a := c.expect, q; e != a {
				t.Errorf("expect %v, got %v", e, a)
			}
		})
	}
}

func TestNodeClassString(t *testing.T) {
	cases := map[NodeClass]string{
		NodeClassObject:        "Object",
		NodeClassVariable:      "Variable",
		NodeClassMethod:        "Method",
		NodeClassObjectType:    "ObjectType",
		NodeClassVariableType:  "VariableType",
		NodeClassReferenceType: "ReferenceType",
		NodeClassDataType:      "DataType",
		NodeClassView:          "View",
		NodeClass(3):           "Unspecified",
	}
	for class, expect := range cases {
		if e, a := expect, class.String(); e != a {
			t.Errorf("expect %v, got %v", e, a)
		}
	}
}

func TestParseNodeClassRoundTrip(t *testing.T) {
	classes := []NodeClass{
		NodeClassObject, NodeClassVariable, NodeClassMethod,
		NodeClassObjectType, NodeClassVariableType, NodeClassReferenceType,
		NodeClassDataType, NodeClassView,
	}
	for _, class := range classes {
		got, err := ParseNodeClass(class.String())
		if err != nil {
			t.Fatalf("expect no error, got %v", err)
		}
		if e, a := class, got; e != a {
			t.Errorf("expect %v, got %v", e, a)
		}
	}

	if _, err := ParseNodeClass("Gadget"); err == nil {
		t.Errorf("expect error for unknown class, got none")
	}
}

func TestStandardName(t *testing.T) {
	cases := map[string]struct {
		id     NodeID
		expect string
		ok     bool
	}{
		"builtin": {
			id:     NewNumericID(0, IDBoolean),
			expect: "Boolean",
			ok:     true,
		},
		"reference type": {
			id:     NewNumericID(0, IDHasSubtype),
			expect: "HasSubtype",
			ok:     true,
		},
		"unknown numeric": {
			id: NewNumericID(0, 999999),
		},
		"wrong namespace": {
			id: NewNumericID(2, IDBoolean),
		},
		"string identifier": {
			id: NewStringID(0, "Boolean"),
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := StandardName(c.id)
			if e, a := c.ok, ok; e != a {
				t.Fatalf("expect ok %v, got %v", e, a)
			}
			if e, a := c.expect, got; e != a {
				t.Errorf("expect %v, got %v", e, a)
			}
		})
	}
}

func TestBuiltinName(t *testing.T) {
	if name, ok := BuiltinName(IDLocalizedText); !ok || name != "LocalizedText" {
		t.Errorf("expect LocalizedText, got %v (ok %v)", name, ok)
	}
	if _, ok := BuiltinName(IDStructure); ok {
		t.Errorf("expect Structure to fall outside the builtin range")
	}
	if _, ok := BuiltinName(0); ok {
		t.Errorf("expect no builtin for id 0")
	}
}

func TestObjectIDByName(t *testing.T) {
	id, ok := ObjectIDByName("Argument")
	if !ok {
		t.Fatalf("expect Argument to resolve")
	}
	if e, a := IDArgument, id; e != a {
		t.Errorf("expect %v, got %v", e, a)
	}
	if _, ok := ObjectIDByName("NoSuchType"); ok {
		t.Errorf("expect unknown name to miss")
	}
}
