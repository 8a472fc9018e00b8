package shape

import (
	"testing"

	"github.com/gomodel/validator/rules"
)

func TestMember_KeyName(t *testing.T) {
	m := Member{Name: "Name"}
	if got := m.KeyName(); got != "Name" {
		t.Errorf("KeyName() = %q; want Name", got)
	}

	m.OverrideName = "fullName"
	if got := m.KeyName(); got != "fullName" {
		t.Errorf("KeyName() = %q; want fullName", got)
	}
}

func TestDescriptor_Display(t *testing.T) {
	d := &Descriptor{Name: "firstName"}
	if got := d.Display(); got != "First Name" {
		t.Errorf("Display() = %q; want First Name", got)
	}

	d.DisplayName = "Given Name"
	if got := d.Display(); got != "Given Name" {
		t.Errorf("Display() = %q; want Given Name", got)
	}
}

func TestComputeHasValidators(t *testing.T) {
	name := &Descriptor{Name: "Name", Rules: []rules.Rule{rules.Required{}}}
	age := &Descriptor{Name: "Age"}
	person := &Descriptor{
		Name:      "Person",
		IsComplex: true,
		Members: []Member{
			{Name: "Name", Shape: name},
			{Name: "Age", Shape: age},
		},
	}

	person.ComputeHasValidators()

	if !person.HasValidators {
		t.Error("person.HasValidators = false; want true via Name member")
	}
	if !person.ValidateChildren {
		t.Error("person.ValidateChildren = false; want true for complex shape")
	}
	if !name.HasValidators {
		t.Error("name.HasValidators = false; want true")
	}
	if age.HasValidators {
		t.Error("age.HasValidators = true; want false for rule-free leaf")
	}
	if age.ValidateChildren {
		t.Error("age.ValidateChildren = true; want false for simple shape")
	}
}

func TestComputeHasValidators_RuleFreeTree(t *testing.T) {
	leaf := &Descriptor{Name: "Value"}
	root := &Descriptor{
		Name:      "Wrapper",
		IsComplex: true,
		Members:   []Member{{Name: "Value", Shape: leaf}},
	}

	root.ComputeHasValidators()

	if root.HasValidators {
		t.Error("root.HasValidators = true; want false with no rules anywhere")
	}
}

func TestComputeHasValidators_Required(t *testing.T) {
	d := &Descriptor{Name: "Name", IsRequired: true}

	d.ComputeHasValidators()

	if !d.HasValidators {
		t.Error("HasValidators = false; want true for required shape")
	}
}

func TestComputeHasValidators_Enumerable(t *testing.T) {
	elem := &Descriptor{Name: "Tag", Rules: []rules.Rule{rules.StringLength{Min: 1}}}
	list := &Descriptor{Name: "Tags", IsEnumerable: true, Element: elem}

	list.ComputeHasValidators()

	if !list.HasValidators {
		t.Error("list.HasValidators = false; want true via element shape")
	}
	if !list.ValidateChildren {
		t.Error("list.ValidateChildren = false; want true for enumerable shape")
	}
}

func TestComputeHasValidators_CyclicGraph(t *testing.T) {
	node := &Descriptor{Name: "Node", IsComplex: true}
	node.Members = []Member{
		{Name: "Value", Shape: &Descriptor{Name: "Value", Rules: []rules.Rule{rules.Required{}}}},
		{Name: "Next", Shape: node},
	}

	// Must terminate despite the self-reference.
	node.ComputeHasValidators()

	if !node.HasValidators {
		t.Error("node.HasValidators = false; want true via Value member")
	}
}

func TestComputeHasValidators_ConstructorParams(t *testing.T) {
	param := &Descriptor{Name: "id", Rules: []rules.Rule{rules.Required{}}}
	d := &Descriptor{
		Name:              "Entity",
		IsComplex:         true,
		ConstructorParams: []Member{{Name: "id", Shape: param}},
	}

	d.ComputeHasValidators()

	if !d.HasValidators {
		t.Error("HasValidators = false; want true via constructor parameter")
	}
}
